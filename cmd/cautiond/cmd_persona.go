package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPersonaCmd() *cobra.Command {
	personaCmd := &cobra.Command{
		Use:   "persona",
		Short: "Persona catalog and selection commands",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List selectable personas",
		RunE:  runPersonaList,
	}

	selectCmd := &cobra.Command{
		Use:   "select <name>",
		Short: "Select a persona and persist the choice",
		Args:  cobra.ExactArgs(1),
		RunE:  runPersonaSelect,
	}

	currentCmd := &cobra.Command{
		Use:   "current",
		Short: "Show the currently selected persona",
		RunE:  runPersonaCurrent,
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear the persona selection",
		RunE:  runPersonaClear,
	}

	personaCmd.AddCommand(listCmd, selectCmd, currentCmd, clearCmd)
	return personaCmd
}

func runPersonaList(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, false)
	if err != nil {
		return err
	}

	personas, err := a.svc.Personas(cmd.Context())
	if err != nil {
		return err
	}

	for _, p := range personas {
		fmt.Printf("%-14s %s %s — %s\n", p.Name, p.Icon, p.DisplayName, p.TargetAudience)
	}
	return nil
}

func runPersonaSelect(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, false)
	if err != nil {
		return err
	}

	persona, err := a.svc.SelectPersona(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Selected persona %q (%s)\n", persona.Name, persona.DisplayName)
	for _, right := range persona.PrivacyRights {
		marker := " "
		if right.Actionable {
			marker = "*"
		}
		fmt.Printf("  %s %s: %s\n", marker, right.Title, right.Description)
	}
	return nil
}

func runPersonaCurrent(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, false)
	if err != nil {
		return err
	}

	persona, err := a.svc.CurrentPersona(cmd.Context())
	if err != nil {
		return err
	}
	if persona == nil {
		fmt.Println("No persona selected. Run `cautiond persona list` to pick one.")
		return nil
	}

	fmt.Printf("%s %s (%s)\n", persona.Icon, persona.DisplayName, persona.Name)
	return nil
}

func runPersonaClear(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, false)
	if err != nil {
		return err
	}

	if err := a.svc.ClearPersona(cmd.Context()); err != nil {
		return err
	}
	fmt.Println("Persona selection cleared")
	return nil
}
