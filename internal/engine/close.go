package engine

// CloseDecision tells the host what to do with a window close request.
type CloseDecision int

const (
	// CloseAllow lets the host close.
	CloseAllow CloseDecision = iota
	// CloseBlock keeps the host open; a session is in progress.
	CloseBlock
	// CloseConsumed means the request was the drilled combo and counted as
	// a correct round. The host stays open.
	CloseConsumed
)

// IsCurrentItemCloseCombo reports whether an active session, running or
// paused, is drilling the close-window combo.
func (e *Engine) IsCurrentItemCloseCombo() bool {
	if !e.Active() {
		return false
	}
	it, ok := e.CurrentItem()
	return ok && it.IsCloseIntent()
}

// HandleCloseRequest resolves an external close request.
func (e *Engine) HandleCloseRequest() (CloseDecision, Result) {
	if e.IsCurrentItemCloseCombo() {
		res := e.afterRound(e.win())
		return CloseConsumed, res
	}
	if e.Active() {
		return CloseBlock, Result{Outcome: Ignored}
	}
	return CloseAllow, Result{Outcome: Ignored}
}
