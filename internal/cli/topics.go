package cli

import (
	"embed"

	"github.com/arthur-debert/drupalctl/pkg/cobrax/topics"
	"github.com/arthur-debert/drupalctl/pkg/errors"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicFiles embed.FS

// installTopics replaces the default help command with one serving the
// embedded help topics.
func installTopics(root *cobra.Command) error {
	manager, err := topics.Load(topicFiles, "topics", topics.Options{
		Renderer: topics.NewGlamourRenderer(),
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to load help topics")
	}
	manager.Install(root)
	root.SetHelpCommandGroupID("tools")
	return nil
}
