package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.dalton.dog/bubbleup"

	"github.com/HamStudy/vscroll/internal/components/style"
	"github.com/HamStudy/vscroll/internal/log"
)

const toastDurationSeconds = 4

func newAlertModel(theme *style.Theme, width int) bubbleup.AlertModel {
	model := *bubbleup.NewAlertModel(max(width/2, 20), false, toastDurationSeconds)
	if theme == nil || theme.Colors == nil || theme.Colors.UI == nil {
		return model
	}

	model.RegisterNewAlertType(bubbleup.AlertDefinition{
		Key:       bubbleup.InfoKey,
		ForeColor: string(theme.Colors.UI.Info),
		Prefix:    "»",
	})
	model.RegisterNewAlertType(bubbleup.AlertDefinition{
		Key:       bubbleup.ErrorKey,
		ForeColor: string(theme.Colors.UI.Error),
		Prefix:    "!",
	})
	return model
}

func (a *App) updateAlerts(msg tea.Msg) tea.Cmd {
	outAlert, cmd := a.alert.Update(msg)
	a.alert = outAlert.(bubbleup.AlertModel)
	return cmd
}

// setStatus records the outcome of a jump and shows it as a toast
func (a *App) setStatus(s string, isErr bool) tea.Cmd {
	a.status = s
	a.statusErr = isErr
	log.Printf("status: %s", s)

	alertKey := bubbleup.InfoKey
	if isErr {
		alertKey = bubbleup.ErrorKey
	}
	return a.alert.NewAlertCmd(alertKey, s)
}
