package domain

// KeyPrefix is the default namespace for every key nodeglobe writes to the store.
const KeyPrefix = "nodeglobe:"
