package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/Lzww0608/rapidid"
	"github.com/Lzww0608/rapidid/internal/config"
)

// details is the inspect view of one UUID.
type details struct {
	UUID    string `json:"uuid"`
	Hex     string `json:"hex"`
	Int     string `json:"int"`
	Version int    `json:"version"`
	Variant string `json:"variant"`
	Base64  string `json:"base64"`
	ShortID string `json:"short_id"`
	ULID    string `json:"ulid"`
	Time    string `json:"time,omitempty"`
}

func describe(id rapidid.UUID) details {
	d := details{
		UUID:    id.String(),
		Hex:     id.Hex(),
		Int:     id.Int().String(),
		Version: int(id.Version()),
		Variant: id.Variant().String(),
		Base64:  id.Base64(),
		ShortID: id.ShortID(),
		ULID:    id.ULID(),
	}
	if t := id.Time(); !t.IsZero() {
		d.Time = t.UTC().Format(time.RFC3339Nano)
	}
	return d
}

func (a *app) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <uuid>...",
		Short: "Decode UUIDs and show every encoding and field",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			all := make([]details, 0, len(args))
			for _, arg := range args {
				id, err := rapidid.Build(rapidid.WithHex(arg))
				if err != nil {
					return fmt.Errorf("%q: %w", arg, err)
				}
				all = append(all, describe(id))
			}
			return a.printDetails(cmd.OutOrStdout(), all)
		},
	}
}

func (a *app) printDetails(w io.Writer, all []details) error {
	if a.cfg.Output == config.OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(all)
	}
	for i, d := range all {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "uuid:     %s\n", d.UUID)
		fmt.Fprintf(w, "hex:      %s\n", d.Hex)
		fmt.Fprintf(w, "int:      %s\n", d.Int)
		fmt.Fprintf(w, "version:  %d\n", d.Version)
		fmt.Fprintf(w, "variant:  %s\n", d.Variant)
		fmt.Fprintf(w, "base64:   %s\n", d.Base64)
		fmt.Fprintf(w, "short_id: %s\n", d.ShortID)
		fmt.Fprintf(w, "ulid:     %s\n", d.ULID)
		if d.Time != "" {
			fmt.Fprintf(w, "time:     %s\n", d.Time)
		}
	}
	return nil
}
