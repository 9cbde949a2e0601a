package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"webworker.GO/core/registry"
)

func registered() []*cobra.Command {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryCmd); ok && v != nil {
		return v.([]*cobra.Command)
	}
	return nil
}

// Register queues a command for the root command. Call from init().
// Panics on a duplicate name or after Apply.
func Register(c *cobra.Command) {
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryCmd) {
		panic("cmd: commands locked (register only during init)")
	}
	list := registered()
	for _, r := range list {
		if r.Name() == c.Name() {
			panic("cmd: duplicate command " + c.Name())
		}
	}
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryCmd, append(list, c))
}

// Apply attaches the registered commands to the root command once. A command
// named like a built-in one is skipped.
func Apply() {
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryCmd) {
		return
	}
	builtin := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		builtin[c.Name()] = true
	}
	for _, c := range registered() {
		if builtin[c.Name()] {
			log.Printf("cmd: %s shadows a built-in command, skipping", c.Name())
			continue
		}
		rootCmd.AddCommand(c)
	}
	registry.GlobalRegistry.Lock(registry.KeyRegistryCmd)
}
