package main

import (
	"bytes"
	"testing"
)

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "dreamplan" {
		t.Errorf("Expected root command use to be 'dreamplan', got %s", rootCmd.Use)
	}
	if rootCmd.Short == "" {
		t.Error("Expected root command to have a short description")
	}
}

func TestCommandSubcommands(t *testing.T) {
	expectedCommands := []string{
		"plan",
		"validate",
		"retirement",
		"income",
		"project",
		"buckets",
		"crisis",
		"serve",
		"version",
	}

	registered := rootCmd.Commands()
	for _, expected := range expectedCommands {
		found := false
		for _, c := range registered {
			if c.Name() == expected {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected command '%s' to be registered with root command", expected)
		}
	}
}

func TestRootCommand_Help(t *testing.T) {
	cmd := rootCmd
	cmd.SetArgs([]string{"--help"})

	var buf bytes.Buffer
	cmd.SetOutput(&buf)

	if err := cmd.Execute(); err != nil {
		t.Errorf("Expected no error for help command, got %v", err)
	}
	if buf.String() == "" {
		t.Error("Expected help command to show help text")
	}
}

func TestRootCommand_InvalidCommand(t *testing.T) {
	cmd := rootCmd
	cmd.SetArgs([]string{"invalid-command"})

	var buf bytes.Buffer
	cmd.SetOutput(&buf)

	if err := cmd.Execute(); err == nil {
		t.Error("Expected error for invalid command")
	}
}
