package test

import (
	"math/rand"
	"strings"
)

const validTokens = "let;be;set;to;say;if;then;otherwise;end;while;do;repeat;times;not;and;or;x;counter;Total_2;\"this is a string\";\"escapes \\\"inside\\\" \\n a string\";\"\";+;-;*;/;(;);0;123;9876543210;is greater than;is less than;is equal to;is not equal to;is not greater than;IS NOT LESS THAN;# comment\n;\n"

func GetRandomTokens(size int) string {
	return GetRandomTokensWithSep(size, " ")
}

func GetRandomTokensWithSep(size int, sep string) string {
	valid := strings.Split(validTokens, ";")

	var toks []string
	for len(toks) < size {
		toks = append(toks, valid[rand.Intn(len(valid))])
	}

	return strings.Join(toks, sep)
}
