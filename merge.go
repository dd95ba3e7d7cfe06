package normalizr

// Upsert stores rec under typeName/key. When an entity is already stored
// there, rec's fields overwrite same-named fields and fields only present in
// the stored entity are kept. The stored entity is returned.
func Upsert(entities Entities, typeName, key string, rec Entity) Entity {
	return upsert(entities, typeName, key, rec, nil)
}

// upsert is Upsert where the keys in filled hold synthesized values (defaults,
// empty collections). They only fill keys the stored entity does not have
// yet, so a later sighting that omits a field keeps the earlier value.
func upsert(entities Entities, typeName, key string, rec Entity, filled map[string]struct{}) Entity {
	bucket, ok := entities[typeName]
	if !ok {
		bucket = map[string]Entity{}
		entities[typeName] = bucket
	}
	cur, ok := bucket[key]
	if !ok {
		cur = make(Entity, len(rec))
		bucket[key] = cur
	}
	for k, v := range rec {
		if _, synth := filled[k]; synth {
			if _, has := cur[k]; has {
				continue
			}
		}
		cur[k] = v
	}
	return cur
}

// MergeEntities upserts every entity of src into dst.
func MergeEntities(dst, src Entities) {
	for typeName, bucket := range src {
		for key, ent := range bucket {
			Upsert(dst, typeName, key, ent)
		}
	}
}
