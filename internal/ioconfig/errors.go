package ioconfig

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/zooarch/faunadb/pkg/errcode"
)

func SaveError(path string, err error) error {
	msg := "Cannot save connection settings to <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ConnConfigSaveError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot save connection file: %w",
			fn, err),
	}
}
