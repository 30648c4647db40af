package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/alephnull/rfw/internal/fwadm"
	"github.com/alephnull/rfw/internal/version"
	"github.com/alephnull/rfw/pkg/iptables"
	"github.com/alephnull/rfw/pkg/logger"
)

var (
	configFile   string
	iptablesPath string

	chains      []string
	targets     []string
	protocols   []string
	ruleProto   string
	ruleSource  string
	ruleDest    string
	ruleSport   string
	ruleDport   string
	ruleTarget  string
	ruleChain   string
	ruleInIface string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fwadm",
		Short: "Local iptables administration built on the rfw core",
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file (yaml/json/.env)")
	rootCmd.PersistentFlags().StringVar(&iptablesPath, "iptables", "", "Path to the iptables binary (overrides config)")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Verify iptables is installed and the caller may use it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(a *fwadm.Admin) error {
				return a.Check()
			})
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List rules of the tracked chains, optionally filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := iptables.Query{}
			if len(chains) > 0 {
				q["chain"] = chains
			}
			if len(targets) > 0 {
				q["target"] = targets
			}
			if len(protocols) > 0 {
				q["prot"] = protocols
			}
			return run(func(a *fwadm.Admin) error {
				return a.List(q, os.Stdout)
			})
		},
	}
	listCmd.Flags().StringSliceVar(&chains, "chain", nil, "Accepted chain values (INPUT, OUTPUT, FORWARD)")
	listCmd.Flags().StringSliceVar(&targets, "target", nil, "Accepted target values (ACCEPT, DROP, REJECT)")
	listCmd.Flags().StringSliceVar(&protocols, "proto", nil, "Accepted protocol values")

	insertCmd := &cobra.Command{
		Use:   "insert",
		Short: "Insert a rule at the head of its chain",
		RunE: func(cmd *cobra.Command, args []string) error {
			rule, err := ruleFromFlags()
			if err != nil {
				return err
			}
			return run(func(a *fwadm.Admin) error {
				return a.Insert(rule)
			})
		},
	}
	addRuleFlags(insertCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the first rule matching the given one",
		RunE: func(cmd *cobra.Command, args []string) error {
			rule, err := ruleFromFlags()
			if err != nil {
				return err
			}
			return run(func(a *fwadm.Admin) error {
				return a.Delete(rule)
			})
		},
	}
	addRuleFlags(deleteCmd)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.String())
		},
	}

	rootCmd.AddCommand(checkCmd, listCmd, insertCmd, deleteCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRuleFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ruleChain, "chain", "", "Chain (INPUT, OUTPUT, FORWARD)")
	cmd.Flags().StringVar(&ruleTarget, "target", "", "Target (ACCEPT, DROP, REJECT)")
	cmd.Flags().StringVar(&ruleProto, "proto", "", "Protocol (tcp, udp, ...)")
	cmd.Flags().StringVar(&ruleSource, "source", "", "Source address or CIDR")
	cmd.Flags().StringVar(&ruleDest, "destination", "", "Destination address or CIDR")
	cmd.Flags().StringVar(&ruleSport, "sport", "", "Source port")
	cmd.Flags().StringVar(&ruleDport, "dport", "", "Destination port")
	cmd.Flags().StringVar(&ruleInIface, "in", "", "Input interface")
	cmd.MarkFlagRequired("chain")
	cmd.MarkFlagRequired("target")
}

// ruleFromFlags maps the rule flags onto listing field names, encoding ports
// the way the listing prints them so the command builder picks them up.
func ruleFromFlags() (iptables.Rule, error) {
	fields := map[string]string{
		"chain":  ruleChain,
		"target": ruleTarget,
	}
	if ruleProto != "" {
		fields["prot"] = ruleProto
	}
	if ruleSource != "" {
		fields["source"] = ruleSource
	}
	if ruleDest != "" {
		fields["destination"] = ruleDest
	}
	if ruleInIface != "" {
		fields["in"] = ruleInIface
	}

	extra := ""
	if ruleDport != "" {
		extra = "dpt:" + ruleDport
	}
	if ruleSport != "" {
		if extra != "" {
			extra += " "
		}
		extra += "spt:" + ruleSport
	}
	if extra != "" {
		fields["extra"] = extra
	}

	return iptables.RuleFromFields(fields)
}

// run wires the fx graph, invokes the one-shot operation and winds the app
// down again.
func run(invoke any) error {
	app := fx.New(
		fx.Supply(configFile),
		fx.Decorate(applyOverrides),

		fx.WithLogger(func(log logger.Logger) fxevent.Logger {
			return logger.NewFxLogger(log)
		}),

		logger.Module,
		fwadm.Module,

		fx.Invoke(invoke),
	)

	if err := app.Err(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return err
	}
	return app.Stop(ctx)
}

func applyOverrides(cfg *fwadm.Config) *fwadm.Config {
	if iptablesPath != "" {
		cfg.IptablesPath = iptablesPath
	}
	return cfg
}
