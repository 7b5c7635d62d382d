package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/shulehub/shule/core/menu"
)

var (
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).MarginTop(1)
	itemStyle    = lipgloss.NewStyle().PaddingLeft(2)
	subItemStyle = lipgloss.NewStyle().PaddingLeft(5).Foreground(lipgloss.Color("245"))
	pathStyle    = lipgloss.NewStyle().Faint(true)
	addonStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

func newMenuCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Show the navigation visible to the current user",
		RunE: func(cmd *cobra.Command, args []string) error {
			usr, ok := a.manager.Current()
			if !ok {
				fmt.Println("Not signed in. Run `shule login` first.")
				return nil
			}

			sections := menu.Build(usr)
			if len(sections) == 0 {
				fmt.Println("No menu entries; this account has no permissions.")
				return nil
			}
			fmt.Println(renderMenu(sections))
			return nil
		},
	}
}

func renderMenu(sections []menu.Section) string {
	var b strings.Builder
	for _, sec := range sections {
		b.WriteString(sectionStyle.Render(sec.Name))
		b.WriteByte('\n')
		for _, item := range sec.Items {
			name := item.Name
			if item.Addon {
				name += " " + addonStyle.Render("(addon)")
			}
			line := name
			if item.Path != "" {
				line += "  " + pathStyle.Render(item.Path)
			}
			b.WriteString(itemStyle.Render(line))
			b.WriteByte('\n')
			for _, sub := range item.Sub {
				b.WriteString(subItemStyle.Render(sub.Name + "  " + pathStyle.Render(sub.Path)))
				b.WriteByte('\n')
			}
		}
	}
	return b.String()
}
