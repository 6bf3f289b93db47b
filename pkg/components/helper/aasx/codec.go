package aasx

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/industrial-twin/aas-package-manager/lib/model"
	"github.com/industrial-twin/aas-package-manager/pkg/models/aas"
)

const (
	envEntryJSON = "aasenv.json"
	envEntryXML  = "aasenv.xml"
)

// ReadFile opens an environment from a file in the given format.
func ReadFile(filePath string, f model.Format) (*aas.Environment, error) {
	switch f {
	case model.FormatJSON, model.FormatXML:
		file, err := os.Open(filePath)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return decodeDocument(file, f)
	case model.FormatAASX:
		return readArchive(filePath)
	default:
		return nil, fmt.Errorf("unknown format '%s'", f)
	}
}

// WriteFile persists an environment to a file in the given format.
func WriteFile(filePath string, f model.Format, env *aas.Environment) error {
	file, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer file.Close()
	switch f {
	case model.FormatJSON, model.FormatXML:
		return encodeDocument(file, f, env)
	case model.FormatAASX:
		return writeArchive(file, env)
	default:
		return fmt.Errorf("unknown format '%s'", f)
	}
}

func decodeDocument(r io.Reader, f model.Format) (*aas.Environment, error) {
	var env aas.Environment
	switch f {
	case model.FormatJSON:
		if err := json.NewDecoder(r).Decode(&env); err != nil {
			return nil, err
		}
	case model.FormatXML:
		var doc xmlEnvironment
		if err := xml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, err
		}
		tmp, err := doc.toEnvironment()
		if err != nil {
			return nil, err
		}
		env = *tmp
	default:
		return nil, fmt.Errorf("unknown format '%s'", f)
	}
	return &env, nil
}

func encodeDocument(w io.Writer, f model.Format, env *aas.Environment) error {
	switch f {
	case model.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(env)
	case model.FormatXML:
		if _, err := io.WriteString(w, xml.Header); err != nil {
			return err
		}
		enc := xml.NewEncoder(w)
		enc.Indent("", "  ")
		if err := enc.Encode(fromEnvironment(env)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format '%s'", f)
	}
}

// EncodeXML writes the XML rendition of an environment, used for the
// XML flavored rotating backups.
func EncodeXML(w io.Writer, env *aas.Environment) error {
	return encodeDocument(w, model.FormatXML, env)
}

func readArchive(filePath string) (*aas.Environment, error) {
	b, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return DecodeArchive(b)
}

// DecodeArchive reads an environment from archive bytes. The archive
// branch of ReadFile delegates here.
func DecodeArchive(b []byte) (*aas.Environment, error) {
	r, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, err
	}
	entry, f := findEnvEntry(r)
	if entry == nil {
		return nil, errors.New("archive holds no environment document")
	}
	file, err := entry.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return decodeDocument(file, f)
}

func writeArchive(w io.Writer, env *aas.Environment) error {
	zw := zip.NewWriter(w)
	entry, err := zw.Create(envEntryJSON)
	if err != nil {
		return err
	}
	if err = encodeDocument(entry, model.FormatJSON, env); err != nil {
		return err
	}
	return zw.Close()
}

func findEnvEntry(r *zip.Reader) (*zip.File, model.Format) {
	var firstJSON, firstXML *zip.File
	for _, file := range r.File {
		switch file.Name {
		case envEntryJSON:
			return file, model.FormatJSON
		case envEntryXML:
			return file, model.FormatXML
		}
		if firstJSON == nil && strings.HasSuffix(strings.ToLower(file.Name), ".json") {
			firstJSON = file
		}
		if firstXML == nil && strings.HasSuffix(strings.ToLower(file.Name), ".xml") {
			firstXML = file
		}
	}
	if firstJSON != nil {
		return firstJSON, model.FormatJSON
	}
	if firstXML != nil {
		return firstXML, model.FormatXML
	}
	return nil, model.FormatUnknown
}
