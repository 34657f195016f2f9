package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shaiso/flowctl/internal/client"
)

var tagHeaders = []string{"ID", "NAME", "CREATED"}

func tagRow(tag client.Tag) []string {
	return []string{tag.ID, tag.Name, tag.CreatedAt}
}

// NewTagCmd создаёт группу команд для управления tags.
func NewTagCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage tags",
	}

	cmd.AddCommand(
		newTagListCmd(clientFn, outputFn),
		newTagShowCmd(clientFn, outputFn),
		newTagCreateCmd(clientFn, outputFn),
		newTagUpdateCmd(clientFn, outputFn),
		newTagDeleteCmd(clientFn, outputFn),
	)

	return cmd
}

func newTagListCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			var tags []client.Tag
			cursor := ""
			for {
				page, err := c.ListTags(cmd.Context(), cursor)
				if err != nil {
					return err
				}
				tags = append(tags, page.Tags...)
				if page.NextCursor == "" {
					break
				}
				cursor = page.NextCursor
			}

			rows := make([][]string, len(tags))
			for i, tag := range tags {
				rows[i] = tagRow(tag)
			}
			out.Print(tagHeaders, rows, tags)
			return nil
		},
	}
}

func newTagShowCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show tag details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			tag, err := c.GetTag(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out.Print(tagHeaders, [][]string{tagRow(*tag)}, tag)
			return nil
		},
	}
}

func newTagCreateCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "create NAME",
		Short: "Create a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			tag, err := c.CreateTag(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Tag created: %s", tag.ID))
			out.Print(tagHeaders, [][]string{tagRow(*tag)}, tag)
			return nil
		},
	}
}

func newTagUpdateCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "update ID NAME",
		Short: "Rename a tag",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			tag, err := c.UpdateTag(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			out.Success("Tag updated")
			out.Print(tagHeaders, [][]string{tagRow(*tag)}, tag)
			return nil
		},
	}
}

func newTagDeleteCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			if err := c.DeleteTag(cmd.Context(), args[0]); err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Tag deleted: %s", args[0]))
			return nil
		},
	}
}
