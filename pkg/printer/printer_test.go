package printer

import (
	"bytes"
	"context"
	"io"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyValueAndItemLineFitWidth(t *testing.T) {
	doc := NewDocument(Width58mm)
	doc.KeyValue("Total:", "180.00")
	doc.ItemLine(2, "A very long product name that never fits", "200.00")

	out := doc.Bytes()[2:] // skip ESC @
	lines := bytes.Split(bytes.TrimRight(out, "\n"), []byte{LF})
	require.Len(t, lines, 2)
	for _, l := range lines {
		assert.Len(t, []rune(string(l)), Width58mm)
	}
	assert.True(t, bytes.HasPrefix(lines[1], []byte("2x A very long")))
	assert.True(t, bytes.HasSuffix(lines[1], []byte("200.00")))
}

func TestWrap(t *testing.T) {
	assert.Equal(t, []string{"short"}, Wrap("short", 10))
	assert.Equal(t, []string{"hello", "world foo"}, Wrap("hello world foo", 9))
	assert.Equal(t, []string{"abcde", "fgh"}, Wrap("abcdefgh", 5))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "añ", Truncate("año", 2))
	assert.Equal(t, "", Truncate("x", 0))
}

func TestNewPrinterFromConfig(t *testing.T) {
	p, err := NewPrinterFromConfig("none", "", "")
	require.NoError(t, err)
	assert.Equal(t, "none", p.Kind())

	_, err = NewPrinterFromConfig("usb", "", "")
	assert.Error(t, err)

	_, err = NewPrinterFromConfig("network", "", "")
	assert.Error(t, err)

	_, err = NewPrinterFromConfig("bluetooth", "", "")
	assert.Error(t, err)
}

func TestUSBPrinterWritesDeviceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lp0")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	p := NewUSBPrinter(path)
	assert.True(t, p.IsConnected())
	require.NoError(t, p.Print(context.Background(), []byte("ticket")))

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ticket", string(written))
}

func TestNetworkPrinterSendsBytes(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		data, _ := io.ReadAll(conn)
		received <- data
	}()

	p := NewNetworkPrinter(ln.Addr().String())
	require.NoError(t, p.Print(context.Background(), []byte{ESC, '@'}))
	assert.Equal(t, []byte{ESC, '@'}, <-received)
}
