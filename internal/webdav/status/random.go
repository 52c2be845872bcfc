package status

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand"
)

// Source 随机数来源，测试中可替换为确定性实现
type Source interface {
	// Intn 返回 [0, n) 内的随机整数，n 必须大于 0
	Intn(n int) int
}

type cryptoSource struct{}

// CryptoSource 基于 crypto/rand 的随机源，可并发使用
func CryptoSource() Source {
	return cryptoSource{}
}

func (cryptoSource) Intn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// 熵源不可用时退回到全局伪随机源，它同样是并发安全的
		return mrand.Intn(n)
	}
	return int(v.Int64())
}
