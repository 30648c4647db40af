package fwadm

import (
	"fmt"
	"io"
	"text/tabwriter"

	"go.uber.org/fx"

	"github.com/alephnull/rfw/pkg/iptables"
	"github.com/alephnull/rfw/pkg/logger"
)

// Admin drives one-shot iptables operations for the fwadm binary.
type Admin struct {
	gate   *iptables.Gate
	logger logger.Logger
}

type AdminParams struct {
	fx.In

	Gate   *iptables.Gate
	Logger logger.Logger
}

func NewAdmin(p AdminParams) *Admin {
	return &Admin{
		gate:   p.Gate,
		logger: p.Logger.With(logger.String("component", "fwadm")),
	}
}

// Check runs the startup preflights: binary present, caller privileged.
func (a *Admin) Check() error {
	if err := a.gate.VerifyInstalled(); err != nil {
		return err
	}
	if err := a.gate.VerifyPermission(); err != nil {
		return err
	}
	a.logger.Info("preflight checks passed", logger.String("path", a.gate.Path()))
	return nil
}

// List loads a fresh snapshot, filters it by the query and writes a table.
func (a *Admin) List(q iptables.Query, w io.Writer) error {
	mgr, err := iptables.Load(a.gate)
	if err != nil {
		return err
	}

	rules := mgr.Find(q)
	a.logger.Debug("listed rules",
		logger.Int("total", len(mgr.Rules())),
		logger.Int("matched", len(rules)),
	)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CHAIN\tNUM\tPKTS\tBYTES\tTARGET\tPROT\tIN\tOUT\tSOURCE\tDESTINATION\tEXTRA")
	for _, r := range rules {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Chain, r.Position, r.Packets, r.Bytes, r.Target, r.Protocol,
			r.InInterface, r.OutInterface, r.Source, r.Destination, r.Extra)
	}
	return tw.Flush()
}

// Insert installs the rule at the head of its chain.
func (a *Admin) Insert(r iptables.Rule) error {
	if _, err := iptables.Apply(a.gate, iptables.OpInsert, r); err != nil {
		return err
	}
	a.logger.Info("rule inserted", logger.String("rule", r.String()))
	return nil
}

// Delete removes the first rule matching the given one.
func (a *Admin) Delete(r iptables.Rule) error {
	if _, err := iptables.Apply(a.gate, iptables.OpDelete, r); err != nil {
		return err
	}
	a.logger.Info("rule deleted", logger.String("rule", r.String()))
	return nil
}
