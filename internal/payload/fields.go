package payload

// Common holds the properties shared by every field variant.
type Common struct {
	// FallbackText is shown by wallets that cannot render the variant.
	FallbackText string
	// Label is the short caption shown above the field value.
	Label string
}

// Field is a single typed entry in a Payload's Fields array. Each concrete
// variant emits a discriminator "Type" key plus its variant-named payload
// object as a sibling key (e.g. "Type":"text_v2" next to "TextV2":{...}).
type Field interface {
	toOrderedObject() orderedObject
}

func baseObject(common Common, typeTag string) orderedObject {
	obj := orderedObject{}
	obj.set("FallbackText", common.FallbackText)
	obj.set("Label", common.Label)
	obj.set("Type", typeTag)
	return obj
}

// TextV2Content is the text body nested inside text_v2 payloads and inside
// preview-layout titles and subtitles.
type TextV2Content struct {
	Text string
}

func (t TextV2Content) toOrderedObject() orderedObject {
	obj := orderedObject{}
	obj.set("Text", t.Text)
	return obj
}

// ListLayout is an ordered sequence of annotated fields, used both as the
// list_layout variant payload and as the Condensed/Expanded sub-lists of a
// preview layout.
type ListLayout struct {
	Fields []AnnotatedField
}

func (l ListLayout) toOrderedObject() orderedObject {
	obj := orderedObject{}
	obj.set("Fields", fieldsArray(l.Fields))
	return obj
}

// TextField is the plain-text variant.
type TextField struct {
	Common
	Text string
}

func (f TextField) toOrderedObject() orderedObject {
	obj := baseObject(f.Common, "text")
	inner := orderedObject{}
	inner.set("Text", f.Text)
	obj.set("Text", inner)
	return obj
}

// TextV2Field is the rich-text variant, used for most single-value fields.
type TextV2Field struct {
	Common
	Text string
}

func (f TextV2Field) toOrderedObject() orderedObject {
	obj := baseObject(f.Common, "text_v2")
	obj.set("TextV2", TextV2Content{Text: f.Text}.toOrderedObject())
	return obj
}

// AddressField is a plain blockchain address with a display name.
type AddressField struct {
	Common
	Address string
	Name    string
}

func (f AddressField) toOrderedObject() orderedObject {
	obj := baseObject(f.Common, "address")
	inner := orderedObject{}
	inner.set("Address", f.Address)
	inner.set("Name", f.Name)
	obj.set("Address", inner)
	return obj
}

// AddressV2Field is an address with optional display name, memo, asset
// label, and badge text. Empty optional strings are omitted from the
// canonical form.
type AddressV2Field struct {
	Common
	Address    string
	Name       string // empty means absent
	Memo       string // empty means absent
	AssetLabel string // empty means absent
	BadgeText  string // empty means absent
}

func (f AddressV2Field) toOrderedObject() orderedObject {
	obj := baseObject(f.Common, "address_v2")
	inner := orderedObject{}
	inner.set("Address", f.Address)
	if f.Name != "" {
		inner.set("Name", f.Name)
	}
	if f.Memo != "" {
		inner.set("Memo", f.Memo)
	}
	if f.AssetLabel != "" {
		inner.set("AssetLabel", f.AssetLabel)
	}
	if f.BadgeText != "" {
		inner.set("BadgeText", f.BadgeText)
	}
	obj.set("AddressV2", inner)
	return obj
}

// NumberField carries a plain numeric string, e.g. a nonce or gas limit.
type NumberField struct {
	Common
	Number string
}

func (f NumberField) toOrderedObject() orderedObject {
	obj := baseObject(f.Common, "number")
	inner := orderedObject{}
	inner.set("Number", f.Number)
	obj.set("Number", inner)
	return obj
}

// AmountField is a token amount with an optional unit abbreviation.
type AmountField struct {
	Common
	Amount       string
	Abbreviation string // empty means absent
}

func (f AmountField) toOrderedObject() orderedObject {
	obj := baseObject(f.Common, "amount")
	inner := orderedObject{}
	inner.set("Amount", f.Amount)
	if f.Abbreviation != "" {
		inner.set("Abbreviation", f.Abbreviation)
	}
	obj.set("Amount", inner)
	return obj
}

// AmountV2Field is the current amount variant: a decimal string plus an
// optional unit abbreviation, rendered independently by wallet UIs.
type AmountV2Field struct {
	Common
	Amount       string
	Abbreviation string // empty means absent
}

func (f AmountV2Field) toOrderedObject() orderedObject {
	obj := baseObject(f.Common, "amount_v2")
	inner := orderedObject{}
	inner.set("Amount", f.Amount)
	if f.Abbreviation != "" {
		inner.set("Abbreviation", f.Abbreviation)
	}
	obj.set("AmountV2", inner)
	return obj
}

// DividerStyleThin is the only divider style currently defined.
const DividerStyleThin = ""

// DividerField renders a visual separator with no associated value.
type DividerField struct {
	Common
	Style string
}

func (f DividerField) toOrderedObject() orderedObject {
	obj := baseObject(f.Common, "divider")
	inner := orderedObject{}
	inner.set("Style", f.Style)
	obj.set("Divider", inner)
	return obj
}

// PreviewLayoutField groups a title/subtitle pair with condensed and
// expanded sub-lists, all optional.
type PreviewLayoutField struct {
	Common
	Title     *TextV2Content
	Subtitle  *TextV2Content
	Condensed *ListLayout
	Expanded  *ListLayout
}

func (f PreviewLayoutField) toOrderedObject() orderedObject {
	obj := baseObject(f.Common, "preview_layout")
	inner := orderedObject{}
	if f.Title != nil {
		inner.set("Title", f.Title.toOrderedObject())
	}
	if f.Subtitle != nil {
		inner.set("Subtitle", f.Subtitle.toOrderedObject())
	}
	if f.Condensed != nil {
		inner.set("Condensed", f.Condensed.toOrderedObject())
	}
	if f.Expanded != nil {
		inner.set("Expanded", f.Expanded.toOrderedObject())
	}
	obj.set("PreviewLayout", inner)
	return obj
}

// ListLayoutField renders an ordered list of nested fields (e.g. one entry
// per Sui programmable-transaction detail row).
type ListLayoutField struct {
	Common
	ListLayout
}

func (f ListLayoutField) toOrderedObject() orderedObject {
	obj := baseObject(f.Common, "list_layout")
	obj.set("ListLayout", f.ListLayout.toOrderedObject())
	return obj
}

// UnknownField is the catch-all variant emitted when a converter cannot
// classify a piece of data into any other variant.
type UnknownField struct {
	Common
	Data        string
	Explanation string
}

func (f UnknownField) toOrderedObject() orderedObject {
	obj := baseObject(f.Common, "unknown")
	inner := orderedObject{}
	inner.set("Data", f.Data)
	inner.set("Explanation", f.Explanation)
	obj.set("Unknown", inner)
	return obj
}

// StaticAnnotation carries free text fixed at converter-build time.
type StaticAnnotation struct {
	Text string
}

// DynamicAnnotation carries a typed, parameterized annotation resolved at
// conversion time. It is transported verbatim.
type DynamicAnnotation struct {
	Type   string
	ID     string
	Params []string
}

// AnnotatedField pairs a Field with its optional static/dynamic
// annotations, flattened next to the field's own keys in the canonical
// form.
type AnnotatedField struct {
	Field             Field
	StaticAnnotation  *StaticAnnotation
	DynamicAnnotation *DynamicAnnotation
}

func (af AnnotatedField) toOrderedObject() orderedObject {
	obj := af.Field.toOrderedObject()
	if af.StaticAnnotation != nil {
		sa := orderedObject{}
		sa.set("Text", af.StaticAnnotation.Text)
		obj.set("StaticAnnotation", sa)
	}
	if af.DynamicAnnotation != nil {
		da := orderedObject{}
		da.set("Type", af.DynamicAnnotation.Type)
		da.set("ID", af.DynamicAnnotation.ID)
		params := make(jsonArray, 0, len(af.DynamicAnnotation.Params))
		for _, p := range af.DynamicAnnotation.Params {
			params = append(params, p)
		}
		da.set("Params", params)
		obj.set("DynamicAnnotation", da)
	}
	return obj
}

// Plain wraps a Field with no annotations, the common case.
func Plain(f Field) AnnotatedField {
	return AnnotatedField{Field: f}
}
