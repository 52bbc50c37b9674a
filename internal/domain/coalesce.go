package domain

import "time"

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// PatchStr returns *p when set, otherwise current.
func PatchStr(current string, p *string) string {
	if p != nil {
		return *p
	}
	return current
}

// PatchInt returns *p when set, otherwise current.
func PatchInt(current int, p *int) int {
	if p != nil {
		return *p
	}
	return current
}

// PatchFloat returns *p when set, otherwise current.
func PatchFloat(current float64, p *float64) float64 {
	if p != nil {
		return *p
	}
	return current
}

// PatchTime returns p when set, otherwise current. A zero time clears the value.
func PatchTime(current *time.Time, p *time.Time) *time.Time {
	if p == nil {
		return current
	}
	if p.IsZero() {
		return nil
	}
	return p
}
