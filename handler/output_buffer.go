package handler

import (
	"bytes"

	"github.com/neovim/go-client/nvim"
)

const modifiableOptionName = "modifiable"

func newBuffer(vim *nvim.Nvim, buffer nvim.Buffer) *Buffer {
	return &Buffer{
		buffer: buffer,
		vim:    vim,
	}
}

// Buffer replaces the contents of a neovim buffer on every write, even if
// the buffer is not modifiable.
type Buffer struct {
	buffer nvim.Buffer
	vim    *nvim.Nvim
}

func splitLines(p []byte) [][]byte {
	p = bytes.TrimSuffix(p, []byte("\n"))
	if len(p) == 0 {
		return [][]byte{}
	}
	return bytes.Split(p, []byte("\n"))
}

func (b *Buffer) Write(p []byte) (int, error) {
	var isModifiable bool
	err := b.vim.BufferOption(b.buffer, modifiableOptionName, &isModifiable)
	if err != nil {
		return 0, err
	}

	batch := b.vim.NewBatch()
	if !isModifiable {
		batch.SetBufferOption(b.buffer, modifiableOptionName, true)
	}
	batch.SetBufferLines(b.buffer, 0, -1, true, splitLines(p))
	if !isModifiable {
		batch.SetBufferOption(b.buffer, modifiableOptionName, false)
	}

	if err := batch.Execute(); err != nil {
		return 0, err
	}

	return len(p), nil
}
