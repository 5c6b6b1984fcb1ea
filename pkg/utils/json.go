package utils

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PrettyJson formata in como JSON indentado; em caso de erro retorna a mensagem
func PrettyJson(in any) string {
	buffer, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return err.Error()
	}

	return string(buffer)
}
