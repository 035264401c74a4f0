// Package ui renders commands for the rapidmcp inspection subcommands.
//
// Output is plain strings styled with Lip Gloss; markdown prompts are rendered
// with Glamour. Nothing here writes to the MCP stream.
package ui

import (
	"fmt"
	"strconv"
	"strings"

	"rapidmcp/internal/command"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const (
	// DefaultStyle picks a glamour style from the terminal.
	DefaultStyle = styles.AutoStyle

	// DefaultWordWrap is used when no width is given.
	DefaultWordWrap = 80
)

// CommandTable renders commands as a bordered table of name, version,
// description and parameter count.
func CommandTable(cmds []*command.Command) string {
	if len(cmds) == 0 {
		return HelpStyle.Render("No commands loaded.")
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(BorderColor)).
		Headers("NAME", "VERSION", "DESCRIPTION", "PARAMS").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderCellStyle
			}
			return CellStyle
		})

	for _, cmd := range cmds {
		t.Row(cmd.Name, cmd.Version, singleLine(cmd.Description), strconv.Itoa(len(cmd.Parameters)))
	}

	return t.String()
}

// CommandDetail renders a command's metadata and parameters followed by its
// prompt rendered as markdown.
func CommandDetail(cmd *command.Command, style string, width int) (string, error) {
	prompt, err := RenderMarkdown(cmd.Prompt, style, width)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(cmd.Name) + "\n")
	b.WriteString(field("Version", cmd.Version))
	b.WriteString(field("Description", cmd.Description))

	b.WriteString("\n" + LabelStyle.Render("Parameters") + "\n")
	if len(cmd.Parameters) == 0 {
		b.WriteString(HelpStyle.Render("  none") + "\n")
	}
	for _, p := range cmd.Parameters {
		b.WriteString(parameterLine(p) + "\n")
	}

	b.WriteString("\n" + LabelStyle.Render("Prompt") + "\n")
	b.WriteString(prompt)

	return b.String(), nil
}

// RenderMarkdown renders md with the named glamour style. An empty style
// selects DefaultStyle and a non-positive width selects DefaultWordWrap.
func RenderMarkdown(md, style string, width int) (string, error) {
	if style == "" {
		style = DefaultStyle
	}
	if width <= 0 {
		width = DefaultWordWrap
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	out, err := renderer.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}

	return out, nil
}

func field(label, value string) string {
	return LabelStyle.Render(label+":") + " " + value + "\n"
}

func parameterLine(p command.Parameter) string {
	attrs := p.Type
	if p.Required {
		attrs += ", " + RequiredStyle.Render("required")
	}

	line := fmt.Sprintf("  - %s (%s): %s", p.Name, attrs, p.Description)
	if p.Default != nil {
		line += SubtitleStyle.Render(fmt.Sprintf(" [default: %q]", *p.Default))
	}
	return line
}

// singleLine collapses whitespace so a description fits one table row.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
