package storefront_test

import (
	"log/slog"
	"net/url"
	"strconv"

	"github.com/Chrissankov/gymshark-ecommerce/core/logger"
)

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

func queryEscape(s string) string { return url.QueryEscape(s) }

func nopLogger() *slog.Logger { return logger.Nop() }
