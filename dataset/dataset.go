// Package dataset loads the groups and the exhibition history of a
// tournament from JSON or YAML files.
package dataset

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ezBadminton/hoopsim/internal"
)

var ErrUnknownFormat = errors.New("unknown data file format")

//go:embed data/*.json
var embeddedFS embed.FS

const (
	defaultGroupsPath      = "data/groups.json"
	defaultExhibitionsPath = "data/exhibitions.json"
)

type TeamRecord struct {
	Country  string `json:"Team" yaml:"Team"`
	IsoCode  string `json:"ISOCode" yaml:"ISOCode"`
	FibaRank int    `json:"FIBARanking" yaml:"FIBARanking"`
}

type ExhibitionRecord struct {
	Date     string `json:"Date" yaml:"Date"`
	Opponent string `json:"Opponent" yaml:"Opponent"`
	Result   string `json:"Result" yaml:"Result"`
}

// A DataSet is the raw input of a tournament.
// It can build any number of fresh team records.
type DataSet struct {
	// Teams per group name in draw order
	Groups map[string][]TeamRecord
	// Exhibition results per federation code
	Exhibitions map[string][]ExhibitionRecord
}

// Returns the embedded Paris 2024 data set
func Default() (*DataSet, error) {
	return LoadFS(embeddedFS, defaultGroupsPath, defaultExhibitionsPath)
}

// Loads the data set from the file system. An empty exhibitions
// path means there is no exhibition history.
func Load(groupsPath, exhibitionsPath string) (*DataSet, error) {
	return load(readOSFile, groupsPath, exhibitionsPath)
}

// Same as Load but reads from the given fs.FS
func LoadFS(fsys fs.FS, groupsPath, exhibitionsPath string) (*DataSet, error) {
	readFile := func(path string) ([]byte, error) { return fs.ReadFile(fsys, path) }
	return load(readFile, groupsPath, exhibitionsPath)
}

func readOSFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func load(readFile func(string) ([]byte, error), groupsPath, exhibitionsPath string) (*DataSet, error) {
	dataSet := &DataSet{
		Groups:      map[string][]TeamRecord{},
		Exhibitions: map[string][]ExhibitionRecord{},
	}

	if err := decodeFile(readFile, groupsPath, &dataSet.Groups); err != nil {
		return nil, fmt.Errorf("load groups: %w", err)
	}

	if exhibitionsPath != "" {
		if err := decodeFile(readFile, exhibitionsPath, &dataSet.Exhibitions); err != nil {
			return nil, fmt.Errorf("load exhibitions: %w", err)
		}
	}

	return dataSet, nil
}

func decodeFile(readFile func(string) ([]byte, error), path string, v any) error {
	data, err := readFile(path)
	if err != nil {
		return err
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, v)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, v)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// Creates new team records for every group.
// Each call returns independent teams.
func (d *DataSet) BuildTeams() map[string][]*internal.Team {
	groups := make(map[string][]*internal.Team, len(d.Groups))
	for name, records := range d.Groups {
		teams := make([]*internal.Team, 0, len(records))
		for _, r := range records {
			teams = append(teams, &internal.Team{
				Country:  r.Country,
				IsoCode:  r.IsoCode,
				FibaRank: r.FibaRank,
			})
		}
		groups[name] = teams
	}
	return groups
}

func (d *DataSet) BuildExhibitions() internal.Exhibitions {
	exhibitions := make(internal.Exhibitions, len(d.Exhibitions))
	for code, records := range d.Exhibitions {
		history := make([]internal.Exhibition, 0, len(records))
		for _, r := range records {
			history = append(history, internal.Exhibition{
				Date:     r.Date,
				Opponent: r.Opponent,
				Result:   r.Result,
			})
		}
		exhibitions[code] = history
	}
	return exhibitions
}

// Number of teams over all groups
func (d *DataSet) NumTeams() int {
	n := 0
	for _, records := range d.Groups {
		n += len(records)
	}
	return n
}
