package commands

// RenderQueryFile exports renderQueryFile for testing.
var RenderQueryFile = renderQueryFile //nolint:gochecknoglobals // test export

// FormatParameters exports formatParameters for testing.
var FormatParameters = formatParameters //nolint:gochecknoglobals // test export
