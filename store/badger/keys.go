package badger

// Key prefixes for different data types
const (
	collectionPrefix = "vecol"
	recordPrefix     = "vecrec"

	// keySeparator joins prefix, collection, and record id. Collection names
	// must not contain it.
	keySeparator = ":"
)

// makeCollectionKey generates the registry key for a collection.
func makeCollectionKey(collection string) []byte {
	return []byte(collectionPrefix + keySeparator + collection)
}

// makeRecordKey generates the key for a record within a collection.
func makeRecordKey(collection, id string) []byte {
	return []byte(recordPrefix + keySeparator + collection + keySeparator + id)
}

// makeRecordPrefix generates the iteration prefix covering all records of a collection.
func makeRecordPrefix(collection string) []byte {
	return []byte(recordPrefix + keySeparator + collection + keySeparator)
}
