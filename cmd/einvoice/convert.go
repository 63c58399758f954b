package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	einvoice "github.com/facturo/einvoice"
	"github.com/facturo/einvoice/bill"
	"github.com/spf13/cobra"
)

type convertOpts struct {
	*rootOpts
	profile      string
	businessFile string

	sellerCountry string
	buyerCountry  string

	sellerEndpointID     string
	sellerEndpointScheme string
	buyerEndpointID      string
	buyerEndpointScheme  string

	guideline string
	orderRef  string
	sellerGLN string
	buyerGLN  string

	senderCode         string
	transmissionFormat string
	buyerIsPA          bool
}

func convert(o *rootOpts) *convertOpts {
	return &convertOpts{rootOpts: o}
}

func (c *convertOpts) cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <infile> [outfile]",
		Short: "Convert an invoice JSON document into an electronic invoice XML",
		Args:  cobra.MaximumNArgs(2),
		RunE:  c.runE,
	}

	flags := cmd.Flags()
	flags.StringVar(&c.profile, "profile", os.Getenv("EINVOICE_PROFILE"), "Export profile (ubl21, facturx22, fatturapa)")
	flags.StringVar(&c.businessFile, "business", os.Getenv("EINVOICE_BUSINESS"), "JSON file with the seller's business settings")
	flags.StringVar(&c.sellerCountry, "seller-country", "", "Fallback seller country code (ISO 3166-1 alpha-2)")
	flags.StringVar(&c.buyerCountry, "buyer-country", "", "Fallback buyer country code (ISO 3166-1 alpha-2)")
	flags.StringVar(&c.sellerEndpointID, "seller-endpoint", "", "PEPPOL endpoint ID for the seller")
	flags.StringVar(&c.sellerEndpointScheme, "seller-endpoint-scheme", "", "Scheme ID for the seller endpoint")
	flags.StringVar(&c.buyerEndpointID, "buyer-endpoint", "", "PEPPOL endpoint ID for the buyer")
	flags.StringVar(&c.buyerEndpointScheme, "buyer-endpoint-scheme", "", "Scheme ID for the buyer endpoint")
	flags.StringVar(&c.guideline, "guideline", "", "Factur-X conformance level URN")
	flags.StringVar(&c.orderRef, "order-ref", "", "Buyer order reference")
	flags.StringVar(&c.sellerGLN, "seller-gln", "", "Seller Global Location Number")
	flags.StringVar(&c.buyerGLN, "buyer-gln", "", "Buyer Global Location Number")
	flags.StringVar(&c.senderCode, "sender-code", os.Getenv("EINVOICE_SENDER_CODE"), "SDI sender code (FatturaPA)")
	flags.StringVar(&c.transmissionFormat, "transmission-format", "", "SDI transmission format (FatturaPA, e.g. FPA12 or FPR12)")
	flags.BoolVar(&c.buyerIsPA, "buyer-is-pa", false, "Mark the recipient as a public administration (FatturaPA)")

	return cmd
}

func (c *convertOpts) runE(cmd *cobra.Command, args []string) error {
	input, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer input.Close() // nolint:errcheck

	out, err := c.openOutput(cmd, args)
	if err != nil {
		return err
	}
	defer out.Close() // nolint:errcheck

	inData, err := io.ReadAll(input)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	inv := new(bill.Invoice)
	if err := json.Unmarshal(inData, inv); err != nil {
		return fmt.Errorf("parsing input as invoice: %w", err)
	}

	biz, err := c.loadBusiness()
	if err != nil {
		return err
	}

	opts := einvoice.Options{
		SellerEndpointID:       c.sellerEndpointID,
		SellerEndpointSchemeID: c.sellerEndpointScheme,
		BuyerEndpointID:        c.buyerEndpointID,
		BuyerEndpointSchemeID:  c.buyerEndpointScheme,
		SellerCountryCode:      c.sellerCountry,
		BuyerCountryCode:       c.buyerCountry,
		GuidelineURN:           c.guideline,
		OrderReferenceID:       c.orderRef,
		SellerGLN:              c.sellerGLN,
		BuyerGLN:               c.buyerGLN,
		SenderCode:             c.senderCode,
		TransmissionFormat:     c.transmissionFormat,
		BuyerIsPA:              c.buyerIsPA,
	}

	var outputData []byte
	if c.profile == "fatturapa" {
		outputData, err = einvoice.GenerateFatturaPA(inv, biz, opts)
	} else {
		outputData, _, err = einvoice.Generate(c.profile, inv, biz, opts)
	}
	if err != nil {
		return fmt.Errorf("generating document: %w", err)
	}

	if _, err = out.Write(outputData); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func (c *convertOpts) loadBusiness() (*bill.BusinessSettings, error) {
	if c.businessFile == "" {
		return nil, nil
	}
	data, err := os.ReadFile(c.businessFile)
	if err != nil {
		return nil, fmt.Errorf("reading business settings: %w", err)
	}
	biz := new(bill.BusinessSettings)
	if err := json.Unmarshal(data, biz); err != nil {
		return nil, fmt.Errorf("parsing business settings: %w", err)
	}
	return biz, nil
}
