package cli

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// captureOutput runs fn with os.Stdout redirected and returns what it
// printed. Commands under test write through fmt.Print*, not deps.stdout.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)

	old := os.Stdout
	os.Stdout = w
	t.Cleanup(func() { os.Stdout = old })

	done := make(chan []byte)
	go func() {
		data, _ := io.ReadAll(r)
		done <- data
	}()

	fn()
	require.NoError(t, w.Close())
	os.Stdout = old

	return string(<-done)
}
