package updates

import (
	"context"
	"log/slog"

	"github.com/violinist-dev/allowlist-handler/internal/filtering"
)

// Stage is the allow list step of the update pipeline.
type Stage struct {
	allowList *filtering.AllowList
}

// NewStage creates a Stage around allowList. A nil allow list permits everything.
func NewStage(allowList *filtering.AllowList) *Stage {
	if allowList == nil {
		allowList = filtering.NewAllowList(nil)
	}
	return &Stage{allowList: allowList}
}

// Run returns the updates permitted by the allow list, in their original order.
func (s *Stage) Run(ctx context.Context, list []Update) ([]Update, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.allowList.IsEmpty() {
		slog.Info("No allow list configured, permitting all updates",
			"updateCount", len(list))
		return list, nil
	}

	slog.Info("Applying allow list",
		"patterns", s.allowList.Patterns(),
		"originalUpdateCount", len(list))

	permitted := filtering.Apply(s.allowList, list)

	slog.Info("Allow list filtering completed",
		"permittedUpdates", len(permitted),
		"removedUpdates", len(list)-len(permitted))

	return permitted, nil
}
