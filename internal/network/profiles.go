package network

// RPC endpoints. Compiled in; there is no runtime override.
const (
	EthereumRPCURL = "https://mainnet.infura.io/v3/c7646448da474d328123576232a8c192"
	PolygonRPCURL  = "https://polygon-mainnet.infura.io/v3/c7646448da474d328123576232a8c192"
	BaseRPCURL     = "https://base-mainnet.infura.io/v3/c7646448da474d328123576232a8c192"
	SepoliaRPCURL  = "https://sepolia.infura.io/v3/c7646448da474d328123576232a8c192"
)

// NativeDecimals is the unit scale exponent shared by every predefined network.
const NativeDecimals = 18

// Profiles returns the predefined networks in shortcut order.
func Profiles() []Profile {
	return []Profile{
		{ID: Ethereum, Name: "Ethereum Mainnet", RPCURL: EthereumRPCURL, Currency: "ETH", Symbol: "🔷", ChainID: 1, Decimals: NativeDecimals},
		{ID: Polygon, Name: "Polygon", RPCURL: PolygonRPCURL, Currency: "MATIC", Symbol: "🟣", ChainID: 137, Decimals: NativeDecimals},
		{ID: Base, Name: "Base", RPCURL: BaseRPCURL, Currency: "ETH", Symbol: "🔵", ChainID: 8453, Decimals: NativeDecimals},
		{ID: Sepolia, Name: "Sepolia Testnet", RPCURL: SepoliaRPCURL, Currency: "SepoliaETH", Symbol: "🧪", ChainID: 11155111, Decimals: NativeDecimals},
	}
}

// DefaultRegistry returns the registry of predefined networks.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(Profiles()...)
	if err != nil {
		panic("network: predefined profiles are invalid: " + err.Error())
	}
	return r
}
