package handler

import (
	"fmt"

	"github.com/neovim/go-client/nvim"
)

// YankRegister stores written text in a vim register, the unnamed one by
// default.
type YankRegister struct {
	vim      *nvim.Nvim
	register string
}

func newYankRegister(vim *nvim.Nvim, register string) *YankRegister {
	return &YankRegister{
		vim:      vim,
		register: register,
	}
}

func (yr *YankRegister) Write(p []byte) (int, error) {
	if err := yr.vim.Call("setreg", nil, yr.register, string(p)); err != nil {
		return 0, fmt.Errorf("yr.vim.Call: %w", err)
	}

	return len(p), nil
}
