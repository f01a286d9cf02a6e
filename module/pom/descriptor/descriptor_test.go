package descriptor

import (
	"testing"

	"github.com/harness/pomwatch/util/common/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePom = `<?xml version="1.0" encoding="UTF-8"?>
<project xmlns="http://maven.apache.org/POM/4.0.0"
         xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
  <modelVersion>4.0.0</modelVersion>
  <parent>
    <artifactId>spring-boot-starter-parent</artifactId>
    <version>2.1.0.RELEASE</version>
  </parent>
  <artifactId>my-project1</artifactId>
  <version>1.4.0-SNAPSHOT</version>
  <properties>
    <java.version>11</java.version>
    <zk.version>
      8.6.2
    </zk.version>
    <empty.version/>
  </properties>
</project>
`

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		props      []string
		artifactID string
		version    string
		values     []string
	}{
		{
			name:       "full descriptor",
			raw:        samplePom,
			props:      []string{"java.version", "zk.version", "spring.boot.version"},
			artifactID: "my-project1",
			version:    "1.4.0-SNAPSHOT",
			values:     []string{"11", "8.6.2", MissingValue},
		},
		{
			name:       "empty element is missing",
			raw:        samplePom,
			props:      []string{"empty.version"},
			artifactID: "my-project1",
			version:    "1.4.0-SNAPSHOT",
			values:     []string{MissingValue},
		},
		{
			name:       "no properties element",
			raw:        `<project xmlns="http://maven.apache.org/POM/4.0.0"><artifactId>a</artifactId></project>`,
			props:      []string{"java.version"},
			artifactID: "a",
			version:    MissingValue,
			values:     []string{MissingValue},
		},
		{
			name:       "elements outside the namespace are ignored",
			raw:        `<project><artifactId>a</artifactId><version>1</version></project>`,
			props:      []string{"java.version"},
			artifactID: MissingValue,
			version:    MissingValue,
			values:     []string{MissingValue},
		},
		{
			name:       "no tracked properties",
			raw:        samplePom,
			props:      nil,
			artifactID: "my-project1",
			version:    "1.4.0-SNAPSHOT",
			values:     []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Parse([]byte(tt.raw), tt.props)
			require.NoError(t, err)
			assert.Equal(t, tt.artifactID, d.ArtifactID)
			assert.Equal(t, tt.version, d.Version)
			require.Len(t, d.Properties, len(tt.props))
			for i, p := range d.Properties {
				assert.Equal(t, tt.props[i], p.Name)
				assert.Equal(t, tt.values[i], p.Value)
			}
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	inputs := map[string]string{
		"empty":         "",
		"unclosed":      `<project xmlns="http://maven.apache.org/POM/4.0.0"><artifactId>a</project>`,
		"not xml":       `{"content": "abc"}`,
		"trailing text": `<project xmlns="http://maven.apache.org/POM/4.0.0"></project> junk`,
		"two roots":     `<project></project><project></project>`,
	}
	for name, raw := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(raw), []string{"java.version"})
			require.Error(t, err)
			var pe *errors.ParseError
			assert.True(t, errors.As(err, &pe))
		})
	}
}

func TestParse_DeclaredEncodings(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		artifactID string
	}{
		{
			name: "latin-1 with a non-ascii byte",
			raw: "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
				"<project xmlns=\"http://maven.apache.org/POM/4.0.0\">" +
				"<artifactId>caf\xe9</artifactId><version>1.0</version>" +
				"<properties><java.version>11</java.version></properties></project>",
			artifactID: "café",
		},
		{
			name: "us-ascii",
			raw: `<?xml version="1.0" encoding="US-ASCII"?>
<project xmlns="http://maven.apache.org/POM/4.0.0"><artifactId>plain</artifactId><version>1.0</version>` +
				`<properties><java.version>11</java.version></properties></project>`,
			artifactID: "plain",
		},
		{
			name: "utf-8 byte order mark",
			raw: "\xef\xbb\xbf<?xml version=\"1.0\" encoding=\"UTF-8\"?>" +
				`<project xmlns="http://maven.apache.org/POM/4.0.0"><artifactId>bom</artifactId><version>1.0</version>` +
				`<properties><java.version>11</java.version></properties></project>`,
			artifactID: "bom",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Parse([]byte(tt.raw), []string{"java.version"})
			require.NoError(t, err)
			assert.Equal(t, tt.artifactID, d.ArtifactID)
			assert.Equal(t, "1.0", d.Version)
			assert.Equal(t, "11", d.Value("java.version"))
		})
	}
}

func TestParse_UnknownEncoding(t *testing.T) {
	raw := `<?xml version="1.0" encoding="x-no-such-charset"?><project xmlns="http://maven.apache.org/POM/4.0.0"></project>`
	_, err := Parse([]byte(raw), nil)
	var pe *errors.ParseError
	assert.True(t, errors.As(err, &pe))
}

func TestDescriptor_Value(t *testing.T) {
	d, err := Parse([]byte(samplePom), []string{"java.version", "zk.version"})
	require.NoError(t, err)

	assert.Equal(t, "my-project1", d.Value("artifactId"))
	assert.Equal(t, "1.4.0-SNAPSHOT", d.Value("version"))
	assert.Equal(t, "8.6.2", d.Value("zk.version"))
	assert.Equal(t, MissingValue, d.Value("unknown"))
}
