// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package cmdline

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flag holds information about a command flag
type Flag struct {
	ID           string
	Value        interface{}
	DefaultValue interface{}
	Name         string
	ShortHand    string
	Usage        string
	Tag          string
	Deprecated   string
	Hidden       bool
	Required     bool
	EnvKeys      []string
	EnvHandler   EnvHandler
}

// flagManager manages cobra command flags and store them
// in a hash map
type flagManager struct {
	flags map[string]*Flag
}

// newFlagManager instantiates a flag manager and returns it
func newFlagManager() *flagManager {
	return &flagManager{
		flags: make(map[string]*Flag),
	}
}

func (m *flagManager) setFlagOptions(flag *Flag, cmd *cobra.Command) error {
	if err := cmd.Flags().SetAnnotation(flag.Name, "argtag", []string{flag.Tag}); err != nil {
		return fmt.Errorf("could not set argtag annotation: %s", err)
	}
	if len(flag.EnvKeys) > 0 {
		if err := cmd.Flags().SetAnnotation(flag.Name, "envkey", flag.EnvKeys); err != nil {
			return fmt.Errorf("could not set envkey annotation: %s", err)
		}
	}
	if err := cmd.Flags().SetAnnotation(flag.Name, "ID", []string{flag.ID}); err != nil {
		return fmt.Errorf("could not set ID annotation: %s", err)
	}
	if flag.Deprecated != "" {
		if err := cmd.Flags().MarkDeprecated(flag.Name, flag.Deprecated); err != nil {
			return fmt.Errorf("could not mark flag as deprecated: %s", err)
		}
	}
	if flag.Hidden {
		if err := cmd.Flags().MarkHidden(flag.Name); err != nil {
			return fmt.Errorf("could not mark flag as hidden: %s", err)
		}
	}
	if flag.Required {
		if err := cmd.MarkFlagRequired(flag.Name); err != nil {
			return fmt.Errorf("could not mark flag as required: %s", err)
		}
	}
	return nil
}

func (m *flagManager) registerFlagForCmd(flag *Flag, cmds ...*cobra.Command) error {
	if flag == nil {
		return fmt.Errorf("nil flag provided")
	}
	for _, c := range cmds {
		if c == nil {
			return fmt.Errorf("nil command provided")
		}
	}
	if len(cmds) == 0 {
		return fmt.Errorf("no command provided for flag %s", flag.Name)
	}

	var err error

	switch t := flag.DefaultValue.(type) {
	case string:
		if flag.EnvHandler == nil && len(flag.EnvKeys) > 0 {
			flag.EnvHandler = EnvStringNSlice
		}
		err = m.registerStringVar(flag, cmds)
	case bool:
		if flag.EnvHandler == nil && len(flag.EnvKeys) > 0 {
			flag.EnvHandler = EnvBool
		}
		err = m.registerBoolVar(flag, cmds)
	default:
		return fmt.Errorf("flag of type %T are not supported", t)
	}
	if err != nil {
		return err
	}

	m.flags[flag.ID] = flag
	return nil
}

func (m *flagManager) registerStringVar(flag *Flag, cmds []*cobra.Command) error {
	for _, c := range cmds {
		c.Flags().StringVarP(flag.Value.(*string), flag.Name, flag.ShortHand, flag.DefaultValue.(string), flag.Usage)
		if err := m.setFlagOptions(flag, c); err != nil {
			return err
		}
	}
	return nil
}

func (m *flagManager) registerBoolVar(flag *Flag, cmds []*cobra.Command) error {
	for _, c := range cmds {
		c.Flags().BoolVarP(flag.Value.(*bool), flag.Name, flag.ShortHand, flag.DefaultValue.(bool), flag.Usage)
		if err := m.setFlagOptions(flag, c); err != nil {
			return err
		}
	}
	return nil
}

func (m *flagManager) updateCmdFlagFromEnv(cmd *cobra.Command, prefix string) error {
	var errs []error

	fn := func(flag *pflag.Flag) {
		envKeys, ok := flag.Annotations["envkey"]
		if !ok {
			return
		}
		id, ok := flag.Annotations["ID"]
		if !ok {
			return
		}
		mflag, ok := m.flags[id[0]]
		if !ok || mflag.EnvHandler == nil {
			return
		}
		for _, key := range envKeys {
			val, set := os.LookupEnv(prefix + key)
			if !set {
				continue
			}
			if err := mflag.EnvHandler(flag, val); err != nil {
				errs = append(errs, err)
				break
			}
		}
	}

	cmd.Flags().VisitAll(fn)

	if len(errs) > 0 {
		return fmt.Errorf("while updating flags from environment: %v", errs)
	}
	return nil
}
