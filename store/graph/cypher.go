package graph

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/fuad-daoud/discord-cache/logger/dlog"
)

// Cypher renders val as a node pattern. The node gets one label per
// embedded struct plus the type's own name; properties come from the
// json form of val, empty values skipped.
func Cypher(key string, val any) string {
	cypherProperties, err := ToProperties(val)
	if err != nil {
		dlog.Error("Cypher: "+err.Error(), "err", err)
		return ""
	}

	labels := strings.Builder{}
	ifv := reflect.ValueOf(val)
	ift := reflect.TypeOf(val)

	for i := 0; i < ift.NumField(); i++ {
		v := ifv.Field(i)
		if v.Kind() == reflect.Struct {
			labels.WriteString(":" + v.Type().Name())
		}
	}
	labels.WriteString(":" + reflect.TypeOf(val).Name())
	return fmt.Sprintf("(%s%s %s)", key, labels.String(), cypherProperties)
}

// ToProperties renders val as an inline cypher property map. Empty
// strings, nils and nested objects are skipped; a val with nothing to
// render comes back as the empty string.
func ToProperties(val any) (string, error) {
	if val == nil {
		dlog.Error("Val in ToProperties can't be nil")
		return "", errors.New("val in ToProperties can't be nil")
	}

	m, err := toMap(val)
	if err != nil {
		return "", err
	}

	stringBuilder := strings.Builder{}
	stringBuilder.WriteString("{")

	for key, value := range m {
		property, ok := ToProperty(value)
		if !ok {
			continue
		}
		stringBuilder.WriteString(fmt.Sprintf(`%s: `, key))
		stringBuilder.WriteString(property)
	}
	cypherProperties := stringBuilder.String()
	if len(cypherProperties) == 1 {
		return "", nil
	}
	cypherProperties = cypherProperties[:len(cypherProperties)-1]
	cypherProperties = cypherProperties + "}"
	return cypherProperties, nil
}

func toMap(in any) (map[string]interface{}, error) {
	inrec, err := json.Marshal(in)
	if err != nil {
		dlog.Error("Error marshalling in", "in", in)
		return nil, err
	}
	var mp map[string]interface{}
	_ = json.Unmarshal(inrec, &mp)
	return mp, nil
}

// ToProperty renders one property value. The second return reports
// whether the value renders at all.
func ToProperty(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		if v == "" {
			return "", false
		}
		v = strings.Replace(v, "\\", "\\\\", -1)
		v = strings.Replace(v, "\"", "\\\"", -1)
		return fmt.Sprintf(`"%v",`, v), true
	case []interface{}:
		builder := strings.Builder{}
		builder.WriteString("[")
		for _, element := range v {
			property, ok := ToProperty(element)
			if ok {
				builder.WriteString(property)
			}
		}
		property := builder.String()
		property = strings.TrimSuffix(property, ",")
		property += "],"
		return property, true
	case map[string]interface{}:
		return "", false
	default:
		return fmt.Sprintf(`%v,`, value), true
	}
}

// ParseAll decodes every record's node under key.
func ParseAll[KeyValue any](key string, records []*neo4j.Record) ([]KeyValue, bool) {
	results := make([]KeyValue, 0)
	if len(records) == 0 {
		return results, false
	}
	for _, record := range records {
		get, b := record.Get(key)
		if !b {
			dlog.Error("Invalid key", "key", key)
			return nil, false
		}
		node := get.(neo4j.Node)

		results = append(results, parse[KeyValue](node.Props))
	}
	return results, true
}

// ParseKey decodes the first record's node under key.
func ParseKey[KeyValue any](key string, records []*neo4j.Record) (KeyValue, bool) {
	var result KeyValue
	if len(records) == 0 {
		return result, false
	}

	get, b := records[0].Get(key)
	if !b {
		dlog.Error("Invalid key", "key", key)
		var zeroValue KeyValue
		return zeroValue, false
	}
	node := get.(neo4j.Node)

	return parse[KeyValue](node.Props), true
}

func parse[Result any](props map[string]any) Result {
	var result Result
	_ = mapstructure.Decode(props, &result)
	return result
}
