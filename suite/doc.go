// This file is part of Gfxbench.
//
// Gfxbench is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gfxbench is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gfxbench.  If not, see <https://www.gnu.org/licenses/>.

// Package suite reads the suite definition file. The suite lists the tests of
// a benchmark sequence in order, along with the settings of each test.
//
// The file is YAML:
//
//	referenceImagesFolder: reference
//	inputFolder: input
//	tests:
//	  - id: spinner
//	    app: spinner
//	    url: /tests/spinner?num-frames=300
//	    referenceCompareThreshold: 0.1
//	  - id: solid
//	    app: solid
//	    skipReferenceImageTest: true
//
// Folders are relative to the directory containing the suite file. The URL of
// a test defaults to /tests/<id>. Query parameters in the URL take precedence
// over the settings of the test.
package suite
