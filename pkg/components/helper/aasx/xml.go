package aasx

import (
	"encoding/xml"
	"fmt"

	"github.com/industrial-twin/aas-package-manager/pkg/models/aas"
)

type xmlEnvironment struct {
	XMLName             xml.Name                `xml:"environment"`
	Shells              []xmlShell              `xml:"assetAdministrationShells>assetAdministrationShell"`
	Submodels           []xmlSubmodel           `xml:"submodels>submodel"`
	ConceptDescriptions []xmlConceptDescription `xml:"conceptDescriptions>conceptDescription"`
}

type xmlShell struct {
	ID        string         `xml:"id"`
	IdShort   string         `xml:"idShort"`
	AssetID   string         `xml:"assetId,omitempty"`
	Submodels []xmlReference `xml:"submodelRefs>reference"`
}

type xmlReference struct {
	Keys []xmlKey `xml:"keys>key"`
}

type xmlKey struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

type xmlSubmodel struct {
	ID       string       `xml:"id"`
	IdShort  string       `xml:"idShort"`
	Elements []xmlElement `xml:"submodelElements>element"`
}

type xmlElement struct {
	ModelType string       `xml:"modelType,attr"`
	IdShort   string       `xml:"idShort"`
	Value     string       `xml:"value,omitempty"`
	ValueID   string       `xml:"valueId,omitempty"`
	Children  []xmlElement `xml:"elements>element"`
}

type xmlConceptDescription struct {
	ID      string `xml:"id"`
	IdShort string `xml:"idShort"`
}

func fromEnvironment(env *aas.Environment) xmlEnvironment {
	var doc xmlEnvironment
	for _, s := range env.Shells {
		shell := xmlShell{ID: s.ID, IdShort: s.IdShort, AssetID: s.AssetID}
		for _, ref := range s.Submodels {
			shell.Submodels = append(shell.Submodels, fromReference(ref))
		}
		doc.Shells = append(doc.Shells, shell)
	}
	for _, s := range env.Submodels {
		sm := xmlSubmodel{ID: s.ID, IdShort: s.IdShort}
		for _, e := range s.Elements {
			sm.Elements = append(sm.Elements, fromElement(e))
		}
		doc.Submodels = append(doc.Submodels, sm)
	}
	for _, c := range env.ConceptDescriptions {
		doc.ConceptDescriptions = append(doc.ConceptDescriptions, xmlConceptDescription{ID: c.ID, IdShort: c.IdShort})
	}
	return doc
}

func fromReference(ref aas.Reference) xmlReference {
	var r xmlReference
	for _, k := range ref.Keys {
		r.Keys = append(r.Keys, xmlKey{Type: string(k.Type), Value: k.Value})
	}
	return r
}

func fromElement(e aas.SubmodelElement) xmlElement {
	switch v := e.(type) {
	case *aas.Property:
		return xmlElement{ModelType: "Property", IdShort: v.IdShort, Value: v.Value, ValueID: v.ValueID}
	case *aas.ElementCollection:
		el := xmlElement{ModelType: "SubmodelElementCollection", IdShort: v.IdShort}
		for _, c := range v.Value {
			el.Children = append(el.Children, fromElement(c))
		}
		return el
	default:
		return xmlElement{ModelType: string(e.Kind()), IdShort: e.GetIdShort()}
	}
}

func (doc xmlEnvironment) toEnvironment() (*aas.Environment, error) {
	env := &aas.Environment{}
	for _, s := range doc.Shells {
		shell := &aas.Shell{ID: s.ID, IdShort: s.IdShort, AssetID: s.AssetID}
		for _, ref := range s.Submodels {
			shell.Submodels = append(shell.Submodels, toReference(ref))
		}
		env.Shells = append(env.Shells, shell)
	}
	for _, s := range doc.Submodels {
		sm := &aas.Submodel{ID: s.ID, IdShort: s.IdShort}
		for _, e := range s.Elements {
			elem, err := toElement(e)
			if err != nil {
				return nil, err
			}
			sm.Elements = append(sm.Elements, elem)
		}
		env.Submodels = append(env.Submodels, sm)
	}
	for _, c := range doc.ConceptDescriptions {
		env.ConceptDescriptions = append(env.ConceptDescriptions, &aas.ConceptDescription{ID: c.ID, IdShort: c.IdShort})
	}
	return env, nil
}

func toReference(r xmlReference) aas.Reference {
	var ref aas.Reference
	for _, k := range r.Keys {
		ref.Keys = append(ref.Keys, aas.Key{Type: aas.KeyType(k.Type), Value: k.Value})
	}
	return ref
}

func toElement(e xmlElement) (aas.SubmodelElement, error) {
	switch e.ModelType {
	case "Property":
		return &aas.Property{IdShort: e.IdShort, Value: e.Value, ValueID: e.ValueID}, nil
	case "SubmodelElementCollection":
		c := &aas.ElementCollection{IdShort: e.IdShort}
		for _, child := range e.Children {
			elem, err := toElement(child)
			if err != nil {
				return nil, err
			}
			c.Value = append(c.Value, elem)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown modelType '%s'", e.ModelType)
	}
}
