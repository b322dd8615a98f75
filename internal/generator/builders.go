package generator

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/localize/datagen/internal/domain"
)

var (
	currencies = []string{"USD", "EUR", "ZAR", "GBP", "KES", "NGN"}
	firstNames = []string{"Alex", "Sam", "Jamie", "Taylor", "Jordan", "Casey", "Riley", "Morgan"}
	lastNames  = []string{"Smith", "Johnson", "Brown", "Williams", "Jones", "Miller", "Davis"}

	channels     = []string{"USSD", "APP", "WEB", "POS"}
	retailers    = []string{"Shoprite", "Pick n Pay", "Spar", "Woolworths", "Checkers"}
	descriptions = []string{"Groceries", "Airtime", "Electricity", "Clothing", "Fuel"}
	locations    = []string{"Cape Town", "Johannesburg", "Durban", "Pretoria", "Gqeberha"}
)

// Unit prices used to total a product basket.
var (
	retailCatalog = map[string]decimal.Decimal{
		"Groceries":   decimal.RequireFromString("85.50"),
		"Airtime":     decimal.RequireFromString("20.00"),
		"Electricity": decimal.RequireFromString("150.00"),
		"Clothing":    decimal.RequireFromString("249.99"),
		"Fuel":        decimal.RequireFromString("23.40"),
		"Pharmacy":    decimal.RequireFromString("64.75"),
	}
	wholesaleCatalog = map[string]decimal.Decimal{
		"WholesaleFood":    decimal.RequireFromString("1200.00"),
		"Electronics":      decimal.RequireFromString("2200.00"),
		"Clothing":         decimal.RequireFromString("450.00"),
		"Stationery":       decimal.RequireFromString("75.00"),
		"CleaningSupplies": decimal.RequireFromString("180.00"),
	}
	retailProducts    = []string{"Groceries", "Airtime", "Electricity", "Clothing", "Fuel", "Pharmacy"}
	wholesaleProducts = []string{"WholesaleFood", "Electronics", "Clothing", "Stationery", "CleaningSupplies"}
)

func (g *Generator) name() string {
	return g.rnd.Pick(firstNames) + " " + g.rnd.Pick(lastNames)
}

func (g *Generator) phone() string {
	return "+27" + strconv.Itoa(g.rnd.IntRange(600000000, 799999999))
}

func (g *Generator) businessRegID() string {
	return fmt.Sprintf("BR%d", g.rnd.IntRange(100000, 999999))
}

// basket draws 1-3 distinct products with quantities in [1, maxQty] and
// totals them against catalog.
func (g *Generator) basket(names []string, catalog map[string]decimal.Decimal, maxQty int) (map[string]int, decimal.Decimal) {
	items := g.rnd.Sample(names, g.rnd.IntRange(1, min(3, len(names))))

	products := make(map[string]int, len(items))
	total := decimal.Zero
	for _, item := range items {
		qty := g.rnd.IntRange(1, maxQty)
		products[item] = qty
		total = total.Add(catalog[item].Mul(decimal.NewFromInt(int64(qty))))
	}

	return products, total
}

func (g *Generator) buildISO8583() domain.Payload {
	now := g.now().UTC()

	return &domain.ISO8583Message{
		MTI:                  "0200",
		ProcessingCode:       "000000",
		Amount:               g.rnd.Amount(5, 500).Mul(decimal.NewFromInt(100)).IntPart(),
		TransmissionDateTime: now.Format("0102150405"),
		STAN:                 g.rnd.IntRange(100000, 999999),
		RRN:                  strings.ToUpper(strings.ReplaceAll(g.rnd.UUID().String(), "-", "")[:12]),
		CardNumber:           "4" + g.rnd.Digits(15),
		Expiry:               now.Format("0106"),
		POSEntryMode:         "012",
		AcquirerID:           "000001",
		TerminalID:           fmt.Sprintf("TERM%d", g.rnd.IntRange(1000, 9999)),
		MerchantID:           fmt.Sprintf("MRC%d", g.rnd.IntRange(100000, 999999)),
		Currency:             g.rnd.Pick(currencies),
		CardholderName:       g.name(),
		Description:          "Purchase",
		Timestamp:            domain.Timestamp(now),
	}
}

func (g *Generator) buildISO20022() domain.Payload {
	now := g.now().UTC()
	txID := g.rnd.UUID().String()

	return &domain.CustomerCreditTransfer{
		Initiation: domain.CreditTransferInitiation{
			GroupHeader: domain.GroupHeader{
				MessageID:        txID,
				CreationDateTime: domain.Timestamp(now),
				NumberOfTxs:      "1",
			},
			Payments: []domain.PaymentInformation{
				{
					PaymentInfoID:        "PMT-" + txID[:8],
					PaymentMethod:        "TRF",
					RequestedExecutionDt: now.Format(time.DateOnly),
					Debtor:               domain.Party{Name: g.name()},
					DebtorAccount:        domain.CashAccount{ID: domain.AccountID{IBAN: "DE89" + g.rnd.Digits(17)}},
					Creditor:             domain.Party{Name: g.name()},
					CreditorAccount:      domain.CashAccount{ID: domain.AccountID{IBAN: "GB29" + g.rnd.Digits(17)}},
					Transactions: []domain.CreditTransferTxInfo{
						{
							PaymentID: domain.PaymentID{EndToEndID: txID},
							Amount: domain.InstructedAmount{
								Instructed: domain.CurrencyAmount{
									Currency: g.rnd.Pick(currencies),
									Value:    g.rnd.Amount(10, 1500),
								},
							},
							RemittanceInfo: domain.RemittanceInfo{Unstructured: []string{"Invoice payment"}},
						},
					},
				},
			},
		},
	}
}

func (g *Generator) buildC2B() domain.Payload {
	txID := g.rnd.UUID().String()

	return &domain.C2BEvent{
		Type:          "CitizenToBusiness",
		TransactionID: txID,
		Channel:       g.rnd.Pick(channels),
		Payer: domain.C2BPayer{
			Name:     g.name(),
			MSISDN:   g.phone(),
			IDNumber: strconv.FormatInt(g.rnd.Int64Range(7001010000000, 9912319999999), 10),
		},
		Payee: domain.C2BPayee{
			Name:       g.rnd.Pick(retailers),
			MerchantID: fmt.Sprintf("MER%d", g.rnd.IntRange(100000, 999999)),
			TerminalID: fmt.Sprintf("TERM%d", g.rnd.IntRange(1000, 9999)),
		},
		Amount:      g.rnd.Amount(1, 1000),
		Currency:    g.rnd.Pick(currencies),
		Description: g.rnd.Pick(descriptions),
		Timestamp:   domain.Timestamp(g.now()),
		Metadata: domain.C2BMetadata{
			Reference: "REF-" + strings.ToUpper(txID[:8]),
			Location:  g.rnd.Pick(locations),
		},
	}
}

func (g *Generator) buildCitizenToBusiness() domain.Payload {
	products, total := g.basket(retailProducts, retailCatalog, 5)

	return &domain.CitizenToBusiness{
		BusinessRegID: g.businessRegID(),
		CitizenID:     fmt.Sprintf("CIT%d", g.rnd.IntRange(1000000, 9999999)),
		Products:      products,
		Amount:        total,
		Currency:      g.rnd.Pick(currencies),
		Time:          domain.Timestamp(g.now()),
	}
}

func (g *Generator) buildBusinessToBusiness() domain.Payload {
	products, total := g.basket(wholesaleProducts, wholesaleCatalog, 20)

	return &domain.BusinessToBusiness{
		FromBusinessRegID: g.businessRegID(),
		ToBusinessRegID:   g.businessRegID(),
		Products:          products,
		Amount:            total,
		Currency:          g.rnd.Pick(currencies),
		Time:              domain.Timestamp(g.now()),
	}
}
