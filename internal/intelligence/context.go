package intelligence

import (
	"strconv"
	"strings"

	"github.com/alexanderramin/brandvoice/internal/domain"
	"github.com/alexanderramin/brandvoice/internal/prompt"
)

// BrandContext is the brand profile as prompt context. Only Name is required.
type BrandContext struct {
	Name         string `json:"name"`
	Industry     string `json:"industry"`
	Description  string `json:"description"`
	Website      string `json:"website"`
	TargetMarket string `json:"targetMarket"`
}

// BrandContextFrom converts a stored brand.
func BrandContextFrom(b *domain.Brand) BrandContext {
	return BrandContext{
		Name:         b.Name,
		Industry:     b.Industry,
		Description:  b.Description,
		Website:      b.Website,
		TargetMarket: b.TargetMarket,
	}
}

func (b BrandContext) validate(field string) error {
	if strings.TrimSpace(b.Name) == "" {
		return domain.Required(field + ".name")
	}
	return nil
}

func (b BrandContext) values() prompt.Values {
	return prompt.Values{
		"brandName":    b.Name,
		"industry":     b.Industry,
		"description":  b.Description,
		"website":      b.Website,
		"targetMarket": b.TargetMarket,
	}
}

// MessageContext is the onboarding form plus the current core message.
type MessageContext struct {
	BusinessName   string `json:"businessName"`
	Industry       string `json:"industry"`
	Description    string `json:"description"`
	ProductService string `json:"productService"`
	TargetAudience string `json:"targetAudience"`
	Goals          string `json:"goals"`
	CurrentMessage string `json:"currentMessage"`
}

func (m MessageContext) validate() error {
	if strings.TrimSpace(m.BusinessName) == "" {
		return domain.Required("formData.businessName")
	}
	return nil
}

func (m MessageContext) values() prompt.Values {
	return prompt.Values{
		"businessName":   m.BusinessName,
		"industry":       m.Industry,
		"description":    m.Description,
		"productService": m.ProductService,
		"targetAudience": m.TargetAudience,
		"goals":          m.Goals,
		"currentMessage": m.CurrentMessage,
	}
}

// with copies v and adds extra.
func with(v prompt.Values, kv ...string) prompt.Values {
	out := make(prompt.Values, len(v)+len(kv)/2)
	for k, val := range v {
		out[k] = val
	}
	for i := 0; i+1 < len(kv); i += 2 {
		out[kv[i]] = kv[i+1]
	}
	return out
}

func itoa(n int) string { return strconv.Itoa(n) }
