package window

// WindowBuilderOption is a functional option for configuring an engineWindow.
// Use the With* functions to create options.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithWidth sets the initial window width.
//
// Parameters:
//   - width: initial width in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithWidth(width int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.width = width
	}
}

// WithHeight sets the initial window height.
//
// Parameters:
//   - height: initial height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithHeight(height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.height = height
	}
}

// WithClientAPI selects the context the window creates. Defaults to ClientAPIOpenGL.
//
// Parameters:
//   - api: ClientAPIOpenGL or ClientAPINone
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithClientAPI(api ClientAPI) WindowBuilderOption {
	return func(w *engineWindow) {
		w.clientAPI = api
	}
}

// WithCursorDisabled hides and captures the cursor for unbounded mouse-look. Defaults to true.
//
// Parameters:
//   - disabled: whether to capture the cursor
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithCursorDisabled(disabled bool) WindowBuilderOption {
	return func(w *engineWindow) {
		w.cursorDisabled = disabled
	}
}

// WithSwapInterval sets the OpenGL swap interval (1 = vsync, 0 = uncapped).
//
// Parameters:
//   - interval: frames to wait per swap
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSwapInterval(interval int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.swapInterval = interval
	}
}
