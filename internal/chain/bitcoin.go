package chain

func init() {
	// Bitcoin Mainnet
	Register("BTC", Mainnet, &Params{
		Symbol:   "BTC",
		Name:     "Bitcoin",
		Decimals: 8,

		CoinType: 0,

		PubKeyHashAddrID: 0x00, // 1...
		ScriptHashAddrID: 0x05, // 3...
		WIF:              0x80,
		Bech32HRP:        "bc",

		HDPrivateKeyID: [4]byte{0x04, 0x88, 0xad, 0xe4}, // xprv
		HDPublicKeyID:  [4]byte{0x04, 0x88, 0xb2, 0x1e}, // xpub

		DustLimit: 546,
	})

	// Bitcoin Testnet (testnet3)
	Register("BTC", Testnet, &Params{
		Symbol:   "BTC",
		Name:     "Bitcoin Testnet",
		Decimals: 8,

		CoinType: 1,

		PubKeyHashAddrID: 0x6F, // m or n
		ScriptHashAddrID: 0xC4, // 2...
		WIF:              0xEF,
		Bech32HRP:        "tb",

		HDPrivateKeyID: [4]byte{0x04, 0x35, 0x83, 0x94}, // tprv
		HDPublicKeyID:  [4]byte{0x04, 0x35, 0x87, 0xcf}, // tpub

		DustLimit: 546,
	})
}
