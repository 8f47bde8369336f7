// Package files groups the input-side stages of an import.
//
//   - filesystem: Filesystem abstraction (OS and in-memory)
//   - guard: Confirms the input file exists before anything else happens
//   - csvload: Parses the CSV into a csvmongo.Table with inferred column types
//
// # Usage
//
//	fsProvider := filesystem.NewOSFileSystem()
//	if err := guard.NewGuardWithFS(fsProvider).Check(path); err != nil {
//	    return err
//	}
//	table, err := csvload.NewLoaderWithFS(fsProvider, csvload.DefaultOptions()).Load(path)
package files
