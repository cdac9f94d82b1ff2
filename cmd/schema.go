package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"
)

// configKeys documents the recognized .ship.conf keys. Unknown keys
// still pass through at parse time; this schema exists for editor
// tooling and `ship schema` output only.
type configKeys struct {
	Class            string `json:"class,omitempty" jsonschema:"description=Handler class name; skips detection when set"`
	ProjectName      string `json:"project_name,omitempty" jsonschema:"description=Human project name used in templates and commits"`
	License          string `json:"license,omitempty" jsonschema:"description=License identifier written by start"`
	Homepage         string `json:"homepage,omitempty" jsonschema:"description=Project homepage URL"`
	Bugtracker       string `json:"bugtracker,omitempty" jsonschema:"description=Issue tracker URL"`
	ChangelogFile    string `json:"changelog_file,omitempty" jsonschema:"description=Changelog file name overriding the conventional candidates"`
	NewVersionFormat string `json:"new_version_format,omitempty" jsonschema:"description=Tag format with a single %s placeholder"`
	BuildTestOptions string `json:"build_test_options,omitempty" jsonschema:"description=Extra arguments for the ecosystem test command"`
	BeforeBuild      string `json:"before_build,omitempty" jsonschema:"description=Shell command run before build"`
	AfterBuild       string `json:"after_build,omitempty" jsonschema:"description=Shell command run after build"`
	BeforeShip       string `json:"before_ship,omitempty" jsonschema:"description=Shell command run before ship"`
	AfterShip        string `json:"after_ship,omitempty" jsonschema:"description=Shell command run after ship"`
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print a JSON schema for the recognized .ship.conf keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reflector := jsonschema.Reflector{ExpandedStruct: true}
			schema := reflector.Reflect(&configKeys{})
			out, err := json.MarshalIndent(schema, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding schema: %w", err)
			}
			fmt.Println(string(out))
			return nil
		},
	}
}
