// Package tui renders the console surface of the recovery tool with
// bubbletea: the resume confirmation prompt, the live scan view (progress
// bar, throughput, ETA, matches as they arrive), and the final report
// with clipboard copy of recovered keys.
package tui

import (
	"context"
	"errors"
	"math/big"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wangdage1949/WIF500-Lottery/internal/scanner"
	"github.com/wangdage1949/WIF500-Lottery/models"
)

var ErrUserQuit = errors.New("user quit")

// ConfirmResume shows the persisted record and asks whether to continue
// from it. Returns true to resume, false to start fresh.
func ConfirmResume(prior *models.Progress) (bool, error) {
	finalModel, err := tea.NewProgram(newConfirmModel(prior)).Run()
	if err != nil {
		return false, err
	}

	result, ok := finalModel.(confirmModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	if result.quitByUser {
		return false, ErrUserQuit
	}
	return result.resume, nil
}

// RunScan renders the scan until the driver publishes its DoneEvent and
// the operator leaves the final report. cancel is invoked when the
// operator interrupts a running scan; the view then waits for the driver
// to checkpoint and finish.
func RunScan(cancel context.CancelFunc, events <-chan scanner.Event, total *big.Int, templateWIF string) (scanner.DoneEvent, error) {
	model := newScanModel(cancel, events, total, templateWIF)
	finalModel, err := tea.NewProgram(model).Run()
	if err != nil {
		return scanner.DoneEvent{}, err
	}

	result, ok := finalModel.(scanModel)
	if !ok {
		return scanner.DoneEvent{}, tea.ErrProgramKilled
	}
	if result.done == nil {
		return scanner.DoneEvent{}, errors.New("scan ended without a final event")
	}
	return *result.done, nil
}
