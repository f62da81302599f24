// Package util 平台相关的小工具
package util

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
)

// launcher 打开 URL 的一条命令，URL 追加在 args 之后
type launcher struct {
	name string
	args []string
}

// launchers 各平台按顺序尝试的命令
var launchers = map[string][]launcher{
	"windows": {
		{name: "rundll32", args: []string{"url.dll,FileProtocolHandler"}},
		{name: "explorer"},
	},
	"darwin": {
		{name: "open"},
	},
	"linux": {
		{name: "xdg-open"},
		{name: "sensible-browser"},
		{name: "google-chrome"},
		{name: "firefox"},
		{name: "chromium-browser"},
	},
}

var startCommand = func(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// OpenBrowser 用默认浏览器打开 url，依次尝试当前平台的候选命令
func OpenBrowser(url string) error {
	return openWith(runtime.GOOS, url)
}

func openWith(goos, url string) error {
	candidates, ok := launchers[goos]
	if !ok {
		// 其他类 Unix 平台
		candidates = launchers["linux"]
	}

	var errs []error
	for _, l := range candidates {
		args := append(append([]string{}, l.args...), url)
		if err := startCommand(l.name, args...); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", l.name, err))
			continue
		}
		return nil
	}
	return errors.Join(errs...)
}
