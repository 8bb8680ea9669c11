// Copyright 2026 The Anser Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package app

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
	"github.com/common-nighthawk/go-figure"
	"golang.org/x/term"
)

// colorWriter wraps w so ANSI output downsamples to the terminal's
// capabilities. Production output is stripped of color entirely.
func (a *App) colorWriter(w io.Writer) *colorprofile.Writer {
	cpw := colorprofile.NewWriter(w, os.Environ())
	if a.settings.Environment == EnvironmentProduction {
		cpw.Profile = colorprofile.NoTTY
	}
	return cpw
}

// printStartupBanner renders the service name as ASCII art followed by the
// listen address, version and environment. Narrow terminals get a one-line
// banner instead of art.
func (a *App) printStartupBanner(addr, protocol string) {
	w := a.colorWriter(os.Stdout)

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Width(14).PaddingLeft(2)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)

	display := addr
	if strings.HasPrefix(display, ":") {
		display = "0.0.0.0" + display
	}
	display = "http://" + display

	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width >= 60 {
		art := figure.NewFigure(a.settings.ServiceName, "", false)
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
		for _, line := range art.Slicify() {
			fmt.Fprintln(w, style.Render(line))
		}
	} else {
		fmt.Fprintln(w, valueStyle.Render(a.settings.ServiceName))
	}

	fmt.Fprintln(w, labelStyle.Render("Address:")+"  "+valueStyle.Render(display))
	fmt.Fprintln(w, labelStyle.Render("Protocol:")+"  "+valueStyle.Render(protocol))
	fmt.Fprintln(w, labelStyle.Render("Version:")+"  "+valueStyle.Render(a.settings.ServiceVersion))
	fmt.Fprintln(w, labelStyle.Render("Environment:")+"  "+valueStyle.Render(a.settings.Environment))
	fmt.Fprintln(w)
}
