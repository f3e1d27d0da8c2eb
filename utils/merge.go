package utils

// MergeChanges applies a sparse changes map over an existing document map.
// The merge is shallow: every key present in changes overwrites the original
// value wholesale, nested maps included. Keys listed in protected are dropped
// from changes before merging, whatever their value.
func MergeChanges(entity, changes map[string]interface{}, protected []string) map[string]interface{} {
	merged := make(map[string]interface{}, len(entity)+len(changes))

	for k, v := range entity {
		merged[k] = v
	}

	for k, v := range changes {
		if StringInSlice(k, protected) {
			continue
		}
		merged[k] = v
	}

	return merged
}
