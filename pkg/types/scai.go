package types

import (
	"errors"
	"fmt"
)

// SCAIReportV02 is the SCAI attribute report predicate
// (https://in-toto.io/attestation/scai/attribute-report/v0.2).
type SCAIReportV02 struct {
	Attributes []SCAIAttribute     `json:"attributes"`
	Producer   *ResourceDescriptor `json:"producer,omitempty"`
}

func (*SCAIReportV02) isPredicate() {}

// SCAIAttribute is one attribute assertion about a subject or its producer.
type SCAIAttribute struct {
	Attribute  string              `json:"attribute"`
	Target     *ResourceDescriptor `json:"target,omitempty"`
	Conditions map[string]string   `json:"conditions,omitempty"`
	Evidence   *ResourceDescriptor `json:"evidence,omitempty"`
}

func (p *SCAIReportV02) checkRequired() error {
	if len(p.Attributes) == 0 {
		return errors.New("missing required field attributes")
	}
	for i, a := range p.Attributes {
		if a.Attribute == "" {
			return fmt.Errorf("missing required field attributes[%d].attribute", i)
		}
	}
	return nil
}
