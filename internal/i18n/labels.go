// Package i18n holds the localized labels the pipeline substitutes for blank
// fields and uses for chart bins and export headers.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

type Labels struct {
	Lang string `json:"lang"`

	NoStatus       string `json:"no_status"`
	NoPO           string `json:"no_po"`
	NoVessel       string `json:"no_vessel"`
	NoShipmentType string `json:"no_shipment_type"`
	NoCargoType    string `json:"no_cargo_type"`
	NoWarehouse    string `json:"no_warehouse"`
	NoBatch        string `json:"no_batch"`
	NoBroker       string `json:"no_broker"`

	Delivered     string `json:"delivered"`
	DaysRemaining string `json:"days_remaining"`
	BinOverdue    string `json:"bin_overdue"`
	Bin0To7       string `json:"bin_0_7"`
	Bin8To15      string `json:"bin_8_15"`
	Bin16To30     string `json:"bin_16_30"`
	Bin31Plus     string `json:"bin_31_plus"`
	Shipments     string `json:"shipments"`
}

var sets = map[string]Labels{
	"en": {
		Lang:           "en",
		NoStatus:       "No Status",
		NoPO:           "No PO",
		NoVessel:       "No Vessel",
		NoShipmentType: "No Type",
		NoCargoType:    "No Cargo Type",
		NoWarehouse:    "No Warehouse",
		NoBatch:        "No Batch",
		NoBroker:       "No Broker",
		Delivered:      "Delivered",
		DaysRemaining:  "Days Remaining",
		BinOverdue:     "Overdue (<0)",
		Bin0To7:        "0-7 Days",
		Bin8To15:       "8-15 Days",
		Bin16To30:      "16-30 Days",
		Bin31Plus:      "31+ Days",
		Shipments:      "# of Shipments",
	},
	"pt": {
		Lang:           "pt",
		NoStatus:       "Sem Status",
		NoPO:           "Sem PO",
		NoVessel:       "Sem Navio",
		NoShipmentType: "Sem Tipo",
		NoCargoType:    "Sem Tipo de Mercadoria",
		NoWarehouse:    "Sem Armazém",
		NoBatch:        "Sem Batch",
		NoBroker:       "Sem Broker",
		Delivered:      "Entregue",
		DaysRemaining:  "Dias Restantes",
		BinOverdue:     "Atrasado (<0)",
		Bin0To7:        "0-7 Dias",
		Bin8To15:       "8-15 Dias",
		Bin16To30:      "16-30 Dias",
		Bin31Plus:      "31+ Dias",
		Shipments:      "Nº de Cargas",
	},
	"zh": {
		Lang:           "zh",
		NoStatus:       "无状态",
		NoPO:           "无采购订单",
		NoVessel:       "无船只",
		NoShipmentType: "无类型",
		NoCargoType:    "无货物类型",
		NoWarehouse:    "无仓库",
		NoBatch:        "无批次",
		NoBroker:       "无Broker",
		Delivered:      "已交付",
		DaysRemaining:  "剩余天数",
		BinOverdue:     "逾期 (<0)",
		Bin0To7:        "0-7 天",
		Bin8To15:       "8-15 天",
		Bin16To30:      "16-30 天",
		Bin31Plus:      "31+ 天",
		Shipments:      "装运数量",
	},
}

var (
	supported = []language.Tag{language.English, language.Portuguese, language.Chinese}
	matcher   = language.NewMatcher(supported)
)

// Supported lists the language codes with a label set.
func Supported() []string {
	return []string{"en", "pt", "zh"}
}

// Default returns the English label set.
func Default() Labels {
	return sets["en"]
}

// For returns the label set for an exact code, falling back to English.
func For(lang string) Labels {
	if l, ok := sets[strings.ToLower(strings.TrimSpace(lang))]; ok {
		return l
	}
	return Default()
}

// Match picks a label set from an explicit code or an Accept-Language header,
// using fallback when neither names a supported language.
func Match(acceptLanguage string, fallback string) Labels {
	if l, ok := sets[strings.ToLower(strings.TrimSpace(acceptLanguage))]; ok {
		return l
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return For(fallback)
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return For(fallback)
	}
	base, _ := supported[idx].Base()
	return For(base.String())
}
