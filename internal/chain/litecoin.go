package chain

func init() {
	// Litecoin Mainnet
	Register("LTC", Mainnet, &Params{
		Symbol:   "LTC",
		Name:     "Litecoin",
		Decimals: 8,

		CoinType: 2,

		PubKeyHashAddrID: 0x30, // L...
		ScriptHashAddrID: 0x32, // M...
		WIF:              0xB0,
		Bech32HRP:        "ltc",

		HDPrivateKeyID: [4]byte{0x01, 0x9d, 0x9c, 0xfe}, // Ltpv
		HDPublicKeyID:  [4]byte{0x01, 0x9d, 0xa4, 0x62}, // Ltub

		DustLimit: 5460,
	})

	// Litecoin Testnet
	Register("LTC", Testnet, &Params{
		Symbol:   "LTC",
		Name:     "Litecoin Testnet",
		Decimals: 8,

		CoinType: 1,

		PubKeyHashAddrID: 0x6F, // m or n
		ScriptHashAddrID: 0x3A, // Q...
		WIF:              0xEF,
		Bech32HRP:        "tltc",

		HDPrivateKeyID: [4]byte{0x04, 0x36, 0xef, 0x7d}, // ttpv
		HDPublicKeyID:  [4]byte{0x04, 0x36, 0xf6, 0xe1}, // ttub

		DustLimit: 5460,
	})
}
