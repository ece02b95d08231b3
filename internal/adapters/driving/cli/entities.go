package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
)

var correspondentCmd = &cobra.Command{
	Use:     "correspondent",
	Aliases: []string{"correspondents"},
	Short:   "Manage correspondents",
}

var correspondentCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a correspondent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		regex, _ := cmd.Flags().GetString("matching-regex") //nolint:errcheck // flag is registered
		return runAndPrint(cmd, mustAction(domain.ResourceCorrespondent, domain.OperationCreate), map[string]any{
			"name":           args[0],
			"matching_regex": regex,
		}, domain.Item{})
	},
}

var correspondentReadCmd = &cobra.Command{
	Use:   "read",
	Short: "Read all correspondents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runAndPrint(cmd, mustAction(domain.ResourceCorrespondent, domain.OperationRead), nil, domain.Item{})
	},
}

var documentTypeCmd = &cobra.Command{
	Use:     "document-type",
	Aliases: []string{"document-types"},
	Short:   "Manage document types",
}

var documentTypeReadCmd = &cobra.Command{
	Use:   "read",
	Short: "Read all document types",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runAndPrint(cmd, mustAction(domain.ResourceDocumentType, domain.OperationRead), nil, domain.Item{})
	},
}

var tagCmd = &cobra.Command{
	Use:     "tag",
	Aliases: []string{"tags"},
	Short:   "Manage tags",
}

var tagCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		color, _ := cmd.Flags().GetString("color")          //nolint:errcheck // flag is registered
		regex, _ := cmd.Flags().GetString("matching-regex") //nolint:errcheck // flag is registered
		return runAndPrint(cmd, mustAction(domain.ResourceTag, domain.OperationCreate), map[string]any{
			"name":           args[0],
			"color":          color,
			"matching_regex": regex,
		}, domain.Item{})
	},
}

var tagReadCmd = &cobra.Command{
	Use:   "read",
	Short: "Read all tags",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runAndPrint(cmd, mustAction(domain.ResourceTag, domain.OperationRead), nil, domain.Item{})
	},
}

func init() {
	correspondentCreateCmd.Flags().String("matching-regex", "", "Regular expression for automatic matching")
	tagCreateCmd.Flags().String("matching-regex", "", "Regular expression for automatic matching")
	tagCreateCmd.Flags().String("color", domain.DefaultTagColor, "Tag color as #rrggbb")

	correspondentCmd.AddCommand(correspondentCreateCmd)
	correspondentCmd.AddCommand(correspondentReadCmd)
	documentTypeCmd.AddCommand(documentTypeReadCmd)
	tagCmd.AddCommand(tagCreateCmd)
	tagCmd.AddCommand(tagReadCmd)

	rootCmd.AddCommand(correspondentCmd)
	rootCmd.AddCommand(documentTypeCmd)
	rootCmd.AddCommand(tagCmd)
}
