package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/horizon/internal/contract"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: %w", s, domain.ErrInvalid)
	}
	return id, nil
}

// dateFlag parses a YYYY-MM-DD flag value. An unset flag returns nil; an
// explicitly empty one returns the zero Date, which clears on update.
func dateFlag(cmd *cobra.Command, name string) (*contract.Date, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	raw, _ := cmd.Flags().GetString(name)
	d, err := contract.ParseDate(raw)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	return &d, nil
}

// idFlag returns a pointer to an int64 flag's value when it was set.
func idFlag(cmd *cobra.Command, name string) *int64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetInt64(name)
	return &v
}

// parseEndpoint reads "project:12" or "milestone:4@end". The anchor is
// optional and defaults from the dependency type.
func parseEndpoint(s string) (domain.Endpoint, error) {
	ref, anchor, _ := strings.Cut(strings.TrimSpace(s), "@")
	kind, id, ok := strings.Cut(ref, ":")
	if !ok {
		return domain.Endpoint{}, fmt.Errorf("endpoint %q must look like kind:id[@anchor]: %w", s, domain.ErrInvalid)
	}
	n, err := parseID(id)
	if err != nil {
		return domain.Endpoint{}, err
	}
	return domain.Endpoint{
		Kind:   domain.EntityKind(strings.ToLower(kind)),
		ID:     n,
		Anchor: domain.Anchor(strings.ToLower(anchor)),
	}, nil
}

// endpointValue is a pflag.Value holding a dependency endpoint.
type endpointValue struct {
	ep  domain.Endpoint
	set bool
}

var _ pflag.Value = (*endpointValue)(nil)

func (v *endpointValue) Set(s string) error {
	ep, err := parseEndpoint(s)
	if err != nil {
		return err
	}
	v.ep, v.set = ep, true
	return nil
}

func (v *endpointValue) String() string {
	if !v.set {
		return ""
	}
	if v.ep.Anchor == "" {
		return fmt.Sprintf("%s:%d", v.ep.Kind, v.ep.ID)
	}
	return v.ep.String()
}

func (v *endpointValue) Type() string {
	return "kind:id[@anchor]"
}

// metadataFlag converts --meta key=value pairs into scenario metadata.
func metadataFlag(pairs map[string]string) map[string]any {
	if len(pairs) == 0 {
		return nil
	}
	md := make(map[string]any, len(pairs))
	for k, v := range pairs {
		md[k] = v
	}
	return md
}

func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func changedInt(cmd *cobra.Command, name string) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetInt(name)
	return &v
}

func changedFloat(cmd *cobra.Command, name string) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetFloat64(name)
	return &v
}
