package lookup

// Closed set of get_default(name) constants (spec.md §6). Unknown names
// resolve to Null at the call site, not here.
const (
	DefaultLanguageSystem                 = "LANGUAGE_SYSTEM"
	DefaultLiveVersion                    = "LIVE_VERSION"
	DefaultCurrency                       = "CURRENCY"
	DefaultSalesChannelTypeAPI            = "SALES_CHANNEL_TYPE_API"
	DefaultSalesChannelTypeStorefront     = "SALES_CHANNEL_TYPE_STOREFRONT"
	DefaultSalesChannelTypeProductCompare = "SALES_CHANNEL_TYPE_PRODUCT_COMPARISON"
	DefaultStorageDateTimeFormat          = "STORAGE_DATE_TIME_FORMAT"
	DefaultStorageDateFormat              = "STORAGE_DATE_FORMAT"
	DefaultCMSProductDetailPage           = "CMS_PRODUCT_DETAIL_PAGE"
)

// LanguageRecord and CurrencyRecord are the remote list_languages/
// list_currencies row shapes (spec.md §4.D).
type LanguageRecord struct {
	ID  string
	ISO string
}

type CurrencyRecord struct {
	ID  string
	ISO string
}

// Tables is the immutable, read-only-after-construction result of priming
// (spec.md §3 "Lookup tables"). Zero value is usable but empty.
type Tables struct {
	languageByISO map[string]string
	currencyByISO map[string]string
	defaults      map[string]string

	// SystemLanguageID is the remote constants endpoint's default
	// language id, obtained once and held stable through the run
	// (spec.md §4.H).
	SystemLanguageID string
}

// LanguageByISO returns the language id for an ISO code, or "", false if
// unknown (get_language_by_iso returns Null for this case).
func (t *Tables) LanguageByISO(iso string) (string, bool) {
	id, ok := t.languageByISO[iso]
	return id, ok
}

// CurrencyByISO returns the currency id for an ISO code, or "", false if
// unknown (get_currency_by_iso returns Null for this case).
func (t *Tables) CurrencyByISO(iso string) (string, bool) {
	id, ok := t.currencyByISO[iso]
	return id, ok
}

// Default returns the constant string registered under name, or "", false
// if name is not one of the closed get_default(name) constants.
func (t *Tables) Default(name string) (string, bool) {
	v, ok := t.defaults[name]
	return v, ok
}

// New builds a Tables from primed records and the fixed default constant
// set. systemLanguageID is whatever the remote constants endpoint reports.
func New(languages []LanguageRecord, currencies []CurrencyRecord, systemLanguageID string) *Tables {
	langByISO := make(map[string]string, len(languages))
	for _, l := range languages {
		langByISO[l.ISO] = l.ID
	}
	curByISO := make(map[string]string, len(currencies))
	for _, c := range currencies {
		curByISO[c.ISO] = c.ID
	}

	return &Tables{
		languageByISO:    langByISO,
		currencyByISO:    curByISO,
		SystemLanguageID: systemLanguageID,
		defaults: map[string]string{
			DefaultLanguageSystem:                 systemLanguageID,
			DefaultLiveVersion:                    "live",
			DefaultCurrency:                       DefaultCurrency,
			DefaultSalesChannelTypeAPI:            "api",
			DefaultSalesChannelTypeStorefront:     "storefront",
			DefaultSalesChannelTypeProductCompare: "product_comparison",
			DefaultStorageDateTimeFormat:          "2006-01-02T15:04:05Z07:00",
			DefaultStorageDateFormat:              "2006-01-02",
			DefaultCMSProductDetailPage:           "product_detail",
		},
	}
}
