// Package fileops provides secure, read-only file access for command catalogs.
//
// The scanner lists the immediate entries of a single directory and reads files
// through an os.Root bound to that directory, so by default a symlink that
// points outside the directory cannot be followed. FollowSymlinks lifts that
// restriction for symlink targets while entry names stay confined.
//
// # Example: Loading Eligible Files
//
//	scanner, err := fileops.NewDirectoryScanner("commands", &fileops.DirectoryScanOptions{
//	    IncludeHidden: true,
//	    FileFilter: func(name string) bool {
//	        return filepath.Ext(name) == ".yaml"
//	    },
//	})
//	if err != nil {
//	    return fmt.Errorf("failed to open commands directory: %w", err)
//	}
//	defer scanner.Close()
//
//	files, err := scanner.ScanDirectory()
//	if err != nil {
//	    return err
//	}
//	for _, file := range files {
//	    data, err := scanner.ReadFile(file.Name, 10*1024*1024)
//	    ...
//	}
//
// ScanDirectory never reports subdirectories and never descends into them.
package fileops
