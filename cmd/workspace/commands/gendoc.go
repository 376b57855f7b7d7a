package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/thoreinstein/workspace/internal/errors"
	"github.com/thoreinstein/workspace/pkg/frontmatter"
)

var (
	genDocDir    string
	genDocFormat string
)

var genDocCmd = &cobra.Command{
	Use:    "gen-doc",
	Short:  "Generate reference documentation for the CLI",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE:   runGenDoc,
}

func init() {
	genDocCmd.Flags().StringVarP(&genDocDir, "dir", "d", "", "output directory")
	genDocCmd.Flags().StringVar(&genDocFormat, "format", "markdown", "output format: markdown, man")
	rootCmd.AddCommand(genDocCmd)
}

func runGenDoc(cmd *cobra.Command, _ []string) error {
	if genDocDir == "" {
		return errors.NewUserError(errors.New("output directory is required"), "Pass --dir")
	}
	if err := os.MkdirAll(genDocDir, 0o755); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "creating output directory"), "")
	}

	root := cmd.Root()
	var err error
	switch genDocFormat {
	case "markdown":
		err = doc.GenMarkdownTreeCustom(root, genDocDir, docPrepender, docLink)
	case "man":
		err = doc.GenManTree(root, &doc.GenManHeader{Title: "WORKSPACE", Section: "1"}, genDocDir)
	default:
		return errors.NewUserError(errors.Newf("unknown doc format %q", genDocFormat), "Use --format markdown or --format man")
	}
	if err != nil {
		return errors.NewSystemError(errors.Wrap(err, "generating documentation"), "")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Documentation generated in %s\n", genDocDir)
	return nil
}

type docPage struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// docPrepender turns workspace_mcp_install.md into a "workspace mcp install" header.
func docPrepender(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	title := strings.ReplaceAll(base, "_", " ")

	header, err := frontmatter.Format(docPage{Title: title, Description: "Reference for " + title}, "")
	if err != nil {
		return ""
	}
	return string(header)
}

func docLink(name string) string {
	return "/reference/" + strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name))) + "/"
}
