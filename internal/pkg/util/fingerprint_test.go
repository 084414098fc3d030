package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprintKeyOrderIndependent(t *testing.T) {
	a := Fingerprint(map[string]string{"spiceLevel": "hot", "portion": "full"})
	b := Fingerprint(map[string]string{"portion": "full", "spiceLevel": "hot"})
	assert.Equal(t, a, b)
}

func TestFingerprintEmpty(t *testing.T) {
	assert.Equal(t, "", Fingerprint(nil))
	assert.Equal(t, "", Fingerprint(map[string]string{}))
}

func TestFingerprintDistinguishesValues(t *testing.T) {
	a := Fingerprint(map[string]string{"spiceLevel": "hot"})
	b := Fingerprint(map[string]string{"spiceLevel": "mild"})
	assert.NotEqual(t, a, b)
}

func TestFingerprintEscapesDelimiters(t *testing.T) {
	// 值含分隔符號不可與多欄位混淆
	a := Fingerprint(map[string]string{"a": "1|b=2"})
	b := Fingerprint(map[string]string{"a": "1", "b": "2"})
	assert.NotEqual(t, a, b)
}
