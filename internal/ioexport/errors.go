package ioexport

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/zooarch/faunadb/pkg/errcode"
)

func RenderError(path string, err error) error {
	msg := "Cannot render PDF <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExportRenderError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot render PDF %s: %w",
			fn, path, err),
	}
}

func WriteError(path string, err error) error {
	msg := "Cannot write export file <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExportWriteError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot write export file %s: %w",
			fn, path, err),
	}
}
