package iostats

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/zooarch/faunadb/pkg/errcode"
)

func GenerateError(err error) error {
	msg := "Cannot generate statistics report"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StatsGenerateError,
		Msg:  msg,
		Err: fmt.Errorf("from %s: cannot generate statistics: %w",
			fn, err),
	}
}

func ExportError(err error) error {
	msg := "Cannot export statistics report"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StatsExportError,
		Msg:  msg,
		Err: fmt.Errorf("from %s: cannot export statistics: %w",
			fn, err),
	}
}
