package zotero

// maxItems bounds one extraction batch. Libraries larger than this get
// their most recently modified items.
const maxItems = 1000

// maxAuthors caps the per-item author list. Only the first author ever
// appears in the "et al." display form, so anything past three is noise.
const maxAuthors = 3

// authorsQuery selects every (item, creator) pair for non-deleted items
// in one pass. Ordering puts primary creator roles first, then editors
// and translators, then everything else, preserving Zotero's own order
// index within each group. Loading all creators up front and joining in
// memory avoids one creators query per item.
const authorsQuery = `
SELECT items.itemID, creators.lastName, creators.firstName
FROM items
JOIN itemCreators ON itemCreators.itemID = items.itemID
JOIN creators ON creators.creatorID = itemCreators.creatorID
JOIN creatorTypes ON creatorTypes.creatorTypeID = itemCreators.creatorTypeID
WHERE items.itemID NOT IN (SELECT itemID FROM deletedItems)
ORDER BY items.itemID,
  CASE
    WHEN creatorTypes.creatorType IN (
      'author', 'artist', 'performer', 'director', 'interviewer',
      'cartographer', 'inventor', 'composer', 'sponsor', 'programmer'
    ) THEN 1
    WHEN creatorTypes.creatorType IN ('editor', 'translator') THEN 2
    ELSE 3
  END,
  itemCreators.orderIndex`

// itemsQuery selects one row per non-deleted item, pivoting the
// field/value rows into columns and computing the publication display
// field via a fallback chain over related source fields. Attachments,
// notes and annotations are not references.
const itemsQuery = `
SELECT items.itemID, items.key, itemTypes.typeName,
  MAX(CASE WHEN fields.fieldName = 'title' THEN itemDataValues.value END) AS title,
  MAX(CASE WHEN fields.fieldName = 'date' THEN itemDataValues.value END) AS date,
  MAX(CASE WHEN fields.fieldName = 'url' THEN itemDataValues.value END) AS url,
  MAX(CASE WHEN fields.fieldName = 'extra' THEN itemDataValues.value END) AS extra,
  MAX(CASE WHEN fields.fieldName = 'abstractNote' THEN itemDataValues.value END) AS abstract,
  COALESCE(
    MAX(CASE WHEN fields.fieldName = 'publicationTitle' THEN itemDataValues.value END),
    MAX(CASE WHEN fields.fieldName = 'bookTitle' THEN itemDataValues.value END),
    MAX(CASE WHEN fields.fieldName = 'publisher' THEN itemDataValues.value END),
    MAX(CASE WHEN fields.fieldName = 'proceedingsTitle' THEN itemDataValues.value END),
    MAX(CASE WHEN fields.fieldName = 'conferenceName' THEN itemDataValues.value END),
    MAX(CASE WHEN fields.fieldName = 'programTitle' THEN itemDataValues.value END),
    MAX(CASE WHEN fields.fieldName = 'blogTitle' THEN itemDataValues.value END),
    MAX(CASE WHEN fields.fieldName = 'websiteTitle' THEN itemDataValues.value END),
    MAX(CASE WHEN fields.fieldName = 'dictionaryTitle' THEN itemDataValues.value END),
    MAX(CASE WHEN fields.fieldName = 'encyclopediaTitle' THEN itemDataValues.value END),
    MAX(CASE WHEN fields.fieldName = 'forumTitle' THEN itemDataValues.value END)
  ) AS publication
FROM items
JOIN itemTypes ON itemTypes.itemTypeID = items.itemTypeID
LEFT JOIN itemData ON itemData.itemID = items.itemID
LEFT JOIN fields ON fields.fieldID = itemData.fieldID
LEFT JOIN itemDataValues ON itemDataValues.valueID = itemData.valueID
WHERE itemTypes.typeName NOT IN ('attachment', 'note', 'annotation')
  AND items.itemID NOT IN (SELECT itemID FROM deletedItems)
GROUP BY items.itemID
ORDER BY items.dateModified DESC
LIMIT ?`
