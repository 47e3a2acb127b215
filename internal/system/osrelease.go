package system

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/bctrainers/webmin/internal/models"
)

// OSRelease holds the identification fields read from an os-release file
type OSRelease struct {
	ID     string
	IDLike []string
}

// ReadOSRelease parses the ID and ID_LIKE fields out of an os-release style
// key=value file. A missing file, or a file carrying neither field, is a
// detection failure.
func ReadOSRelease(path string) (*OSRelease, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &models.SetupError{
			Type: models.ErrDetection,
			Err:  fmt.Errorf("cannot read OS identification file %s: %w", path, err),
		}
	}
	defer file.Close()

	osr := &OSRelease{}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), `"'`)
		switch key {
		case "ID":
			osr.ID = value
		case "ID_LIKE":
			osr.IDLike = strings.Fields(value)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &models.SetupError{
			Type: models.ErrDetection,
			Err:  fmt.Errorf("cannot read OS identification file %s: %w", path, err),
		}
	}

	if osr.ID == "" && len(osr.IDLike) == 0 {
		return nil, &models.SetupError{
			Type: models.ErrDetection,
			Err:  fmt.Errorf("%s carries neither ID nor ID_LIKE", path),
		}
	}

	return osr, nil
}

// matchCorpus returns the string classification runs against, preferring
// the ID_LIKE family list over the single ID when present.
func (o *OSRelease) matchCorpus() string {
	if len(o.IDLike) > 0 {
		return strings.Join(o.IDLike, " ")
	}
	return o.ID
}
