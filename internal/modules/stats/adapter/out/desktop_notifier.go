package out

import (
	"context"

	"github.com/gen2brain/beeep"

	statsout "studylog/internal/modules/stats/port/out"
)

type DesktopNotifier struct{}

func NewDesktopNotifier(appName string) statsout.Notifier {
	beeep.AppName = appName
	return DesktopNotifier{}
}

func (DesktopNotifier) Notify(_ context.Context, title, message string) error {
	return beeep.Notify(title, message, "")
}
