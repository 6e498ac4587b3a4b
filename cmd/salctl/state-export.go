package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	json "github.com/goccy/go-json"

	"github.com/saloxy/sal-server/pkg/statefile"
)

// stateExport is the JSON form of a state file.
type stateExport struct {
	UID   string `json:"uid"`
	Token string `json:"token"`
	DirID string `json:"dirid"`
	Files []struct {
		Name     string `json:"name"`
		ObjectID string `json:"object_id"`
	} `json:"files"`
}

// stateExportCmd represents the state export command
var stateExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the state file as JSON",
	Long: `Export the decrypted contents of the state file as JSON on stdout.

The output includes the drive token in the clear; treat it like a
credential.

Example:
  salctl state export > index.json`,
	Run: func(cmd *cobra.Command, args []string) {
		path, err := stateFilePath(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to resolve state file path: %v\n", err)
			os.Exit(1)
		}

		ix, _, err := readState(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read state file: %v\n", err)
			os.Exit(1)
		}

		out := exportFromIndex(ix)
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode: %v\n", err)
			os.Exit(1)
		}
	},
}

// stateImportCmd represents the state import command
var stateImportCmd = &cobra.Command{
	Use:   "import <json-file>",
	Short: "Import a JSON export into the state file",
	Long: `Import a JSON export, encrypting it into the state file under a
freshly generated key.

Example:
  salctl state import index.json`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path, err := stateFilePath(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to resolve state file path: %v\n", err)
			os.Exit(1)
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read %s: %v\n", args[0], err)
			os.Exit(1)
		}

		var in stateExport
		if err := json.Unmarshal(data, &in); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to parse %s: %v\n", args[0], err)
			os.Exit(1)
		}

		key, err := statefile.GenerateKey()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate key: %v\n", err)
			os.Exit(1)
		}

		if err := writeState(path, indexFromExport(&in), key); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write state file: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Imported %d file(s) into %s\n", len(in.Files), path)
	},
}

func init() {
	stateCmd.AddCommand(stateExportCmd)
	stateCmd.AddCommand(stateImportCmd)
}

func exportFromIndex(ix *statefile.Index) *stateExport {
	out := &stateExport{UID: ix.UID, Token: ix.Token, DirID: ix.DirID}
	for _, f := range ix.Files {
		out.Files = append(out.Files, struct {
			Name     string `json:"name"`
			ObjectID string `json:"object_id"`
		}{Name: f.Name, ObjectID: f.ObjectID})
	}
	return out
}

func indexFromExport(in *stateExport) *statefile.Index {
	ix := &statefile.Index{UID: in.UID, Token: in.Token, DirID: in.DirID}
	for _, f := range in.Files {
		ix.Files = append(ix.Files, statefile.File{Name: f.Name, ObjectID: f.ObjectID})
	}
	return ix
}
