package payload

import (
	"encoding/base64"
	"encoding/hex"
)

// NewText builds a plain-text field.
func NewText(label, text string) AnnotatedField {
	return Plain(TextField{Common: Common{Label: label, FallbackText: text}, Text: text})
}

// NewTextV2 builds a rich-text field with the fallback mirroring the text.
func NewTextV2(label, text string) AnnotatedField {
	return Plain(TextV2Field{Common: Common{Label: label, FallbackText: text}, Text: text})
}

// NewNumber builds a number field, with the fallback mirroring the value.
func NewNumber(label, number string) AnnotatedField {
	return Plain(NumberField{Common: Common{Label: label, FallbackText: number}, Number: number})
}

// NewAmount builds an amount field. The fallback text is
// "<amount> <abbreviation>".
func NewAmount(label, amount, abbreviation string) AnnotatedField {
	fallback := amount + " " + abbreviation
	return Plain(AmountField{Common: Common{Label: label, FallbackText: fallback}, Amount: amount, Abbreviation: abbreviation})
}

// NewAmountV2 builds an amount_v2 field. The fallback text is
// "<amount> <abbreviation>".
func NewAmountV2(label, amount, abbreviation string) AnnotatedField {
	fallback := amount + " " + abbreviation
	return Plain(AmountV2Field{Common: Common{Label: label, FallbackText: fallback}, Amount: amount, Abbreviation: abbreviation})
}

// NewAddress builds a plain address field.
func NewAddress(label, address, name string) AnnotatedField {
	return Plain(AddressField{Common: Common{Label: label, FallbackText: address}, Address: address, Name: name})
}

// AddressV2Options carries the optional display properties of an
// address_v2 field; empty strings are omitted from the canonical form.
type AddressV2Options struct {
	Name       string
	Memo       string
	AssetLabel string
	BadgeText  string
}

// NewAddressV2 builds an address field with optional display properties.
// The fallback text is the raw address.
func NewAddressV2(label, address string, opts AddressV2Options) AnnotatedField {
	return Plain(AddressV2Field{
		Common:     Common{Label: label, FallbackText: address},
		Address:    address,
		Name:       opts.Name,
		Memo:       opts.Memo,
		AssetLabel: opts.AssetLabel,
		BadgeText:  opts.BadgeText,
	})
}

// NewDivider builds a thin visual separator field.
func NewDivider(label string) AnnotatedField {
	return Plain(DividerField{Common: Common{Label: label, FallbackText: label}, Style: DividerStyleThin})
}

// NewPreviewLayout builds a preview_layout field. Empty title/subtitle and
// nil condensed/expanded lists are omitted. The fallback text is the
// title (or the label when the title is empty).
func NewPreviewLayout(label, title, subtitle string, condensed, expanded []AnnotatedField) AnnotatedField {
	fallback := title
	if fallback == "" {
		fallback = label
	}
	f := PreviewLayoutField{Common: Common{Label: label, FallbackText: fallback}}
	if title != "" {
		f.Title = &TextV2Content{Text: title}
	}
	if subtitle != "" {
		f.Subtitle = &TextV2Content{Text: subtitle}
	}
	if condensed != nil {
		f.Condensed = &ListLayout{Fields: condensed}
	}
	if expanded != nil {
		f.Expanded = &ListLayout{Fields: expanded}
	}
	return Plain(f)
}

// NewListLayout builds a list_layout field over an ordered field sequence.
func NewListLayout(label, fallback string, fields []AnnotatedField) AnnotatedField {
	return Plain(ListLayoutField{Common: Common{Label: label, FallbackText: fallback}, ListLayout: ListLayout{Fields: fields}})
}

// NewRawData builds the standard "Raw Data" field for expanded views: the
// text carries the base64 encoding of data, the fallback its hex form
// unless an explicit fallback is given.
func NewRawData(data []byte, fallback string) AnnotatedField {
	if fallback == "" {
		fallback = hex.EncodeToString(data)
	}
	return Plain(TextV2Field{
		Common: Common{Label: "Raw Data", FallbackText: fallback},
		Text:   base64.StdEncoding.EncodeToString(data),
	})
}

// NewUnknown builds an unknown-variant field from raw bytes.
func NewUnknown(label string, data []byte, explanation string) AnnotatedField {
	h := "0x" + hex.EncodeToString(data)
	return Plain(UnknownField{Common: Common{Label: label, FallbackText: explanation}, Data: h, Explanation: explanation})
}
